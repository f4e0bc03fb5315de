package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope codes. Domain errors never use HTTP status codes.
const (
	codeOK   = 0
	codeFail = 1
)

// envelope is the uniform response body for every endpoint.
// Data is always present, null when there is nothing to report.
type envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

func ok(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, envelope{Code: codeOK, Msg: msg, Data: data})
}

func fail(c *gin.Context, msg string) {
	failData(c, msg, nil)
}

func failData(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, envelope{Code: codeFail, Msg: msg, Data: data})
}

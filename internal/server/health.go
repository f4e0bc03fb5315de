package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xybrad/o365panel/internal/report"
)

// handleHealth serves GET /api/health. Liveness and diagnostics only; no
// upstream calls.
func (s *Server) handleHealth(c *gin.Context) {
	uptime := time.Since(s.started)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	ok(c, "服务运行正常", gin.H{
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"uptime":        formatUptime(uptime),
		"uptimeSeconds": int64(uptime.Seconds()),
		"listen":        s.cfg.Listen,
		"version":       s.version,
		"memory": gin.H{
			"sys":       report.FormatBytes(int64(mem.Sys)),
			"heapSys":   report.FormatBytes(int64(mem.HeapSys)),
			"heapAlloc": report.FormatBytes(int64(mem.HeapAlloc)),
			"numGC":     mem.NumGC,
		},
		"goVersion": runtime.Version(),
		"platform":  runtime.GOOS,
	})
}

// formatUptime renders a duration the way the front-end displays it.
func formatUptime(d time.Duration) string {
	seconds := int64(d.Seconds())

	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60
	secs := seconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d天 %d小时 %d分钟", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d小时 %d分钟", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%d分钟 %d秒", minutes, secs)
	default:
		return fmt.Sprintf("%d秒", secs)
	}
}

// handleNoRoute serves the static front-end when configured and replies
// with a 404 envelope otherwise. Paths that would escape the static dir
// are refused.
func (s *Server) handleNoRoute(c *gin.Context) {
	if s.cfg.StaticDir != "" && c.Request.Method == http.MethodGet {
		rel := filepath.Clean(strings.TrimPrefix(c.Request.URL.Path, "/"))
		if rel == "." || rel == "" {
			rel = "index.html"
		}

		// Clean does not contain "..", so check locality before joining.
		if filepath.IsLocal(rel) {
			path := filepath.Join(s.cfg.StaticDir, rel)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				c.File(path)

				return
			}
		}
	}

	c.JSON(http.StatusNotFound, envelope{Code: codeFail, Msg: "未找到资源", Data: nil})
}

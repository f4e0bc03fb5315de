package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/xybrad/o365panel/internal/graph"
	"github.com/xybrad/o365panel/internal/report"
)

// newGraphClient acquires a fresh bearer token and returns a Graph client
// bound to it. Tokens are never cached across inbound requests.
func (s *Server) newGraphClient(ctx context.Context) (*graph.Client, error) {
	token, err := graph.AcquireToken(ctx, graph.Credentials{
		TenantID:     s.cfg.Graph.TenantID,
		ClientID:     s.cfg.Graph.ClientID,
		ClientSecret: s.cfg.Graph.ClientSecret,
		TokenURL:     s.cfg.Graph.TokenURL,
	}, s.logger)
	if err != nil {
		return nil, err
	}

	baseURL := s.cfg.Graph.BaseURL
	if baseURL == "" {
		baseURL = graph.DefaultBaseURL
	}

	return graph.NewClient(baseURL, s.httpClient, graph.StaticToken(token), s.logger), nil
}

// accountInfoData is the combined payload for one user: account status,
// licenses, and drive usage.
type accountInfoData struct {
	Enabled           bool            `json:"enabled"`
	PrincipalName     string          `json:"userPrincipalName"`
	DisplayName       string          `json:"displayName"`
	Subscriptions     []graph.License `json:"subscriptions"`
	SubscriptionCount int             `json:"subscriptionCount"`
	OneDriveUsage     *report.Usage   `json:"onedriveUsage"`
}

// handleAccountInfo serves GET /api/account/info/:email. Status, licenses,
// and drive usage are fetched in parallel; a status failure fails the
// request with partial data, while license or drive failures only append a
// note to the success message.
func (s *Server) handleAccountInfo(c *gin.Context) {
	email := c.Param("email")
	ctx := c.Request.Context()

	s.logger.Info("account info lookup", slog.String("email", email))

	client, err := s.newGraphClient(ctx)
	if err != nil {
		fail(c, "获取访问令牌失败")

		return
	}

	var (
		user     graph.User
		userErr  error
		licenses []graph.License
		licErr   error
		quota    graph.Quota
		quotaErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user, userErr = client.User(gctx, email)
		return nil
	})
	g.Go(func() error {
		licenses, licErr = client.LicenseDetails(gctx, email)
		return nil
	})
	g.Go(func() error {
		quota, quotaErr = client.UserDrive(gctx, email)
		return nil
	})
	_ = g.Wait()

	if userErr != nil {
		failData(c, accountStatusMessage(userErr), gin.H{
			"enabled":       false,
			"subscriptions": []graph.License{},
		})

		return
	}

	data := accountInfoData{
		Enabled:       user.AccountEnabled,
		PrincipalName: user.PrincipalName,
		DisplayName:   user.DisplayName,
		Subscriptions: []graph.License{},
	}

	msg := "获取邮箱信息成功"

	if licErr != nil {
		msg += "（订阅信息查询失败）"
	} else {
		data.Subscriptions = licenses
		data.SubscriptionCount = len(licenses)
	}

	if quotaErr != nil {
		msg += "（OneDrive信息查询失败）"
	} else {
		usage := report.NewUsage(quota)
		data.OneDriveUsage = &usage
	}

	ok(c, msg, data)
}

// accountStatusMessage maps a directory lookup error to the user-visible
// failure message.
func accountStatusMessage(err error) string {
	switch {
	case errors.Is(err, graph.ErrNotFound):
		return "用户不存在"
	case errors.Is(err, graph.ErrForbidden):
		return "权限不足，无法查询该用户"
	case errors.Is(err, graph.ErrUnauthorized):
		return "访问令牌无效或已过期"
	default:
		return "查询用户状态失败"
	}
}

// handleSubscribedSkus serves POST /api/subscriptions/skus (admin-gated).
func (s *Server) handleSubscribedSkus(c *gin.Context) {
	ctx := c.Request.Context()

	client, err := s.newGraphClient(ctx)
	if err != nil {
		fail(c, "获取Microsoft Graph访问令牌失败")

		return
	}

	skus, err := client.SubscribedSkus(ctx)
	if err != nil {
		failData(c, "获取SKU信息失败", gin.H{"skus": []graph.Sku{}})

		return
	}

	ok(c, "获取SKU信息成功", gin.H{
		"skus":       skus,
		"totalCount": len(skus),
	})
}

// handleOneDriveAll serves POST /api/onedrive/all (admin-gated): the
// tenant-wide drive usage fan-out.
func (s *Server) handleOneDriveAll(c *gin.Context) {
	ctx := c.Request.Context()

	client, err := s.newGraphClient(ctx)
	if err != nil {
		fail(c, "获取Microsoft Graph访问令牌失败")

		return
	}

	rep, err := report.AggregateAll(ctx, client, s.logger)
	if err != nil {
		fail(c, "获取用户列表失败")

		return
	}

	ok(c, "获取所有用户OneDrive使用情况成功", rep)
}

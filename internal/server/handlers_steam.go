package server

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
)

// steamReady reports whether the Steam API key is configured, failing the
// request if not. The original deployment always had the key; a missing
// key here is a configuration problem, not a user error.
func (s *Server) steamReady(c *gin.Context) bool {
	if s.cfg.Steam.APIKey == "" {
		fail(c, "Steam API密钥未配置")

		return false
	}

	return true
}

// handleSteamProfile serves GET /steam/profile/:steamid.
func (s *Server) handleSteamProfile(c *gin.Context) {
	if !s.steamReady(c) {
		return
	}

	players, err := s.steam.PlayerSummaries(c.Request.Context(), c.Param("steamid"))
	if err != nil {
		s.logger.Warn("steam profile lookup failed", slog.String("error", err.Error()))
		fail(c, "获取玩家信息失败")

		return
	}

	ok(c, "获取玩家信息成功", players)
}

// handleSteamGames serves GET /steam/games/:steamid.
func (s *Server) handleSteamGames(c *gin.Context) {
	if !s.steamReady(c) {
		return
	}

	games, err := s.steam.OwnedGames(c.Request.Context(), c.Param("steamid"))
	if err != nil {
		s.logger.Warn("steam games lookup failed", slog.String("error", err.Error()))
		fail(c, "获取玩家游戏信息失败")

		return
	}

	ok(c, "获取玩家游戏信息成功", games)
}

// handleSteamRecentlyPlayed serves GET /steam/recentlyplayed/:steamid and
// /steam/recentlyplayed/:steamid/:count. Missing or malformed counts fall
// back to the default.
func (s *Server) handleSteamRecentlyPlayed(c *gin.Context) {
	if !s.steamReady(c) {
		return
	}

	count, _ := strconv.Atoi(c.Param("count"))

	games, err := s.steam.RecentlyPlayed(c.Request.Context(), c.Param("steamid"), count)
	if err != nil {
		s.logger.Warn("steam recently played lookup failed", slog.String("error", err.Error()))
		fail(c, "获取玩家最近游玩游戏信息失败")

		return
	}

	ok(c, "获取玩家最近游玩游戏信息成功", games)
}

// handleSteamAchievements serves GET /steam/achievements/:steamid/:appid.
func (s *Server) handleSteamAchievements(c *gin.Context) {
	if !s.steamReady(c) {
		return
	}

	stats, err := s.steam.PlayerAchievements(c.Request.Context(), c.Param("steamid"), c.Param("appid"))
	if err != nil {
		s.logger.Warn("steam achievements lookup failed", slog.String("error", err.Error()))
		fail(c, "获取玩家成就信息失败")

		return
	}

	ok(c, "获取玩家成就信息成功", stats)
}

// handleSteamHeaderImage serves GET /steam/imageurl2base64/:id.
func (s *Server) handleSteamHeaderImage(c *gin.Context) {
	image, err := s.steam.HeaderImageBase64(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Warn("steam header image fetch failed", slog.String("error", err.Error()))
		fail(c, "获取玩家游戏图片失败")

		return
	}

	ok(c, "获取玩家游戏图片成功", image)
}

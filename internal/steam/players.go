package steam

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
)

// DefaultRecentCount is how many recently played games are returned when
// the caller does not say.
const DefaultRecentCount = 5

// Player is one profile from GetPlayerSummaries.
type Player struct {
	SteamID                  string `json:"steamid"`
	PersonaName              string `json:"personaname"`
	ProfileURL               string `json:"profileurl"`
	Avatar                   string `json:"avatar"`
	AvatarMedium             string `json:"avatarmedium"`
	AvatarFull               string `json:"avatarfull"`
	PersonaState             int    `json:"personastate"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	LastLogoff               int64  `json:"lastlogoff,omitempty"`
	TimeCreated              int64  `json:"timecreated,omitempty"`
	GameID                   string `json:"gameid,omitempty"`
	GameExtraInfo            string `json:"gameextrainfo,omitempty"`
}

// Game is one entry from GetOwnedGames or GetRecentlyPlayedGames.
type Game struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name,omitempty"`
	PlaytimeForever int    `json:"playtime_forever"`
	Playtime2Weeks  int    `json:"playtime_2weeks,omitempty"`
	ImgIconURL      string `json:"img_icon_url,omitempty"`
}

// Achievement is one player achievement, with the icon URL merged in from
// the game schema.
type Achievement struct {
	APIName     string `json:"apiname"`
	Achieved    int    `json:"achieved"`
	UnlockTime  int64  `json:"unlocktime"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl"`
}

// PlayerStats is the achievements payload for one player and game.
type PlayerStats struct {
	SteamID      string        `json:"steamID"`
	GameName     string        `json:"gameName"`
	Achievements []Achievement `json:"achievements"`
	Success      bool          `json:"success"`
}

// PlayerSummaries returns the profiles for the given Steam IDs.
func (c *Client) PlayerSummaries(ctx context.Context, steamIDs ...string) ([]Player, error) {
	params := url.Values{}
	params.Set("steamids", strings.Join(steamIDs, ","))

	var out struct {
		Response struct {
			Players []Player `json:"players"`
		} `json:"response"`
	}

	if err := c.get(ctx, "/ISteamUser/GetPlayerSummaries/v0002/", params, &out); err != nil {
		return nil, err
	}

	c.logger.Debug("fetched player summaries", slog.Int("count", len(out.Response.Players)))

	return out.Response.Players, nil
}

// OwnedGames returns every game the player owns.
func (c *Client) OwnedGames(ctx context.Context, steamID string) ([]Game, error) {
	params := url.Values{}
	params.Set("steamid", steamID)

	var out struct {
		Response struct {
			Games []Game `json:"games"`
		} `json:"response"`
	}

	if err := c.get(ctx, "/IPlayerService/GetOwnedGames/v1/", params, &out); err != nil {
		return nil, err
	}

	return out.Response.Games, nil
}

// RecentlyPlayed returns the player's recently played games.
// count <= 0 falls back to DefaultRecentCount.
func (c *Client) RecentlyPlayed(ctx context.Context, steamID string, count int) ([]Game, error) {
	if count <= 0 {
		count = DefaultRecentCount
	}

	params := url.Values{}
	params.Set("steamid", steamID)
	params.Set("count", strconv.Itoa(count))

	var out struct {
		Response struct {
			Games []Game `json:"games"`
		} `json:"response"`
	}

	if err := c.get(ctx, "/IPlayerService/GetRecentlyPlayedGames/v1/", params, &out); err != nil {
		return nil, err
	}

	return out.Response.Games, nil
}

// PlayerAchievements returns the player's achievements for one game, with
// icon URLs joined in from the game schema by achievement API name. A
// schema lookup failure only leaves the icons empty.
func (c *Client) PlayerAchievements(ctx context.Context, steamID, appID string) (*PlayerStats, error) {
	params := url.Values{}
	params.Set("steamid", steamID)
	params.Set("appid", appID)
	params.Set("l", achievementLanguage)

	var stats struct {
		PlayerStats struct {
			SteamID      string        `json:"steamID"`
			GameName     string        `json:"gameName"`
			Achievements []Achievement `json:"achievements"`
			Success      bool          `json:"success"`
		} `json:"playerstats"`
	}

	if err := c.get(ctx, "/ISteamUserStats/GetPlayerAchievements/v1/", params, &stats); err != nil {
		return nil, err
	}

	icons, err := c.achievementIcons(ctx, appID)
	if err != nil {
		c.logger.Warn("schema lookup failed, achievements returned without icons",
			slog.String("appid", appID),
			slog.String("error", err.Error()),
		)
	}

	result := &PlayerStats{
		SteamID:      stats.PlayerStats.SteamID,
		GameName:     stats.PlayerStats.GameName,
		Achievements: stats.PlayerStats.Achievements,
		Success:      stats.PlayerStats.Success,
	}

	if result.Achievements == nil {
		result.Achievements = []Achievement{}
	}

	for i := range result.Achievements {
		result.Achievements[i].IconURL = icons[result.Achievements[i].APIName]
	}

	return result, nil
}

// achievementIcons fetches the game schema and maps achievement API names
// to icon URLs.
func (c *Client) achievementIcons(ctx context.Context, appID string) (map[string]string, error) {
	params := url.Values{}
	params.Set("appid", appID)
	params.Set("l", achievementLanguage)

	var out struct {
		Game struct {
			AvailableGameStats struct {
				Achievements []struct {
					Name string `json:"name"`
					Icon string `json:"icon"`
				} `json:"achievements"`
			} `json:"availableGameStats"`
		} `json:"game"`
	}

	if err := c.get(ctx, "/ISteamUserStats/GetSchemaForGame/v2/", params, &out); err != nil {
		return nil, err
	}

	icons := make(map[string]string, len(out.Game.AvailableGameStats.Achievements))
	for _, a := range out.Game.AvailableGameStats.Achievements {
		icons[a.Name] = a.Icon
	}

	return icons, nil
}

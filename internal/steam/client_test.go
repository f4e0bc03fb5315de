package steam

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a Client with both API and CDN pointed at the
// given httptest servers.
func newTestClient(t *testing.T, apiURL, cdnURL string) *Client {
	t.Helper()

	return NewClient(apiURL, cdnURL, "test-key", http.DefaultClient, nil)
}

func TestPlayerSummaries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ISteamUser/GetPlayerSummaries/v0002/", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "765611,765612", r.URL.Query().Get("steamids"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response": {"players": [
			{"steamid": "765611", "personaname": "Player One", "personastate": 1, "avatarfull": "https://example.com/a.jpg"},
			{"steamid": "765612", "personaname": "Player Two", "personastate": 0}
		]}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, srv.URL)
	players, err := client.PlayerSummaries(context.Background(), "765611", "765612")
	require.NoError(t, err)

	require.Len(t, players, 2)
	assert.Equal(t, "Player One", players[0].PersonaName)
	assert.Equal(t, 1, players[0].PersonaState)
	assert.Equal(t, "765612", players[1].SteamID)
}

func TestOwnedGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/IPlayerService/GetOwnedGames/v1/", r.URL.Path)
		assert.Equal(t, "765611", r.URL.Query().Get("steamid"))

		fmt.Fprint(w, `{"response": {"games": [
			{"appid": 730, "playtime_forever": 1200},
			{"appid": 570, "playtime_forever": 30}
		]}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, srv.URL)
	games, err := client.OwnedGames(context.Background(), "765611")
	require.NoError(t, err)

	require.Len(t, games, 2)
	assert.Equal(t, 730, games[0].AppID)
	assert.Equal(t, 1200, games[0].PlaytimeForever)
}

func TestRecentlyPlayed_CountDefault(t *testing.T) {
	var gotCount string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCount = r.URL.Query().Get("count")
		fmt.Fprint(w, `{"response": {"games": []}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, srv.URL)

	_, err := client.RecentlyPlayed(context.Background(), "765611", 0)
	require.NoError(t, err)
	assert.Equal(t, "5", gotCount)

	_, err = client.RecentlyPlayed(context.Background(), "765611", 3)
	require.NoError(t, err)
	assert.Equal(t, "3", gotCount)
}

func TestPlayerAchievements_IconMerge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ISteamUserStats/GetPlayerAchievements/v1/":
			assert.Equal(t, "schinese", r.URL.Query().Get("l"))
			fmt.Fprint(w, `{"playerstats": {
				"steamID": "765611",
				"gameName": "Counter-Strike 2",
				"success": true,
				"achievements": [
					{"apiname": "WIN_ROUND", "achieved": 1, "unlocktime": 1700000000, "name": "首胜"},
					{"apiname": "PLANT_BOMB", "achieved": 0, "unlocktime": 0}
				]
			}}`)
		case "/ISteamUserStats/GetSchemaForGame/v2/":
			fmt.Fprint(w, `{"game": {"availableGameStats": {"achievements": [
				{"name": "WIN_ROUND", "icon": "https://example.com/win.jpg"}
			]}}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, srv.URL)
	stats, err := client.PlayerAchievements(context.Background(), "765611", "730")
	require.NoError(t, err)

	assert.Equal(t, "765611", stats.SteamID)
	assert.Equal(t, "Counter-Strike 2", stats.GameName)
	assert.True(t, stats.Success)
	require.Len(t, stats.Achievements, 2)

	// Icon joined by apiname; unmatched achievements keep an empty icon.
	assert.Equal(t, "https://example.com/win.jpg", stats.Achievements[0].IconURL)
	assert.Empty(t, stats.Achievements[1].IconURL)
}

func TestPlayerAchievements_SchemaFailureKeepsAchievements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ISteamUserStats/GetPlayerAchievements/v1/":
			fmt.Fprint(w, `{"playerstats": {"steamID": "765611", "gameName": "g", "success": true,
				"achievements": [{"apiname": "A", "achieved": 1}]}}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, srv.URL)
	stats, err := client.PlayerAchievements(context.Background(), "765611", "730")
	require.NoError(t, err)

	require.Len(t, stats.Achievements, 1)
	assert.Empty(t, stats.Achievements[0].IconURL)
}

func TestHeaderImageBase64(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/steam/apps/730/header.jpg", r.URL.Path)
		_, _ = w.Write(raw)
	}))
	defer cdn.Close()

	client := newTestClient(t, cdn.URL, cdn.URL)
	encoded, err := client.HeaderImageBase64(context.Background(), "730")
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), encoded)
}

func TestGet_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, srv.URL)
	_, err := client.OwnedGames(context.Background(), "765611")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

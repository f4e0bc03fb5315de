package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDrive_QuotaDerivation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/user-1/drive", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"quota": {
			"total": 1000,
			"remaining": 750,
			"deleted": 25,
			"state": "normal"
		}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	quota, err := client.UserDrive(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(250), quota.Used)
	assert.Equal(t, int64(1000), quota.Total)
	assert.Equal(t, int64(750), quota.Remaining)
	assert.Equal(t, int64(25), quota.Deleted)
	assert.Equal(t, "normal", quota.State)
	assert.InDelta(t, 25.0, quota.UsedPercentage, 0.001)

	// used + remaining always reconstructs total.
	assert.Equal(t, quota.Total, quota.Used+quota.Remaining)
}

func TestUserDrive_PercentageRounding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"quota": {"total": 3, "remaining": 2, "state": "normal"}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	quota, err := client.UserDrive(context.Background(), "user-1")
	require.NoError(t, err)

	assert.InDelta(t, 33.33, quota.UsedPercentage, 0.001)
}

func TestUserDrive_ZeroTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"quota": {"total": 0, "remaining": 0}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	quota, err := client.UserDrive(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, quota.UsedPercentage)
	assert.Zero(t, quota.Used)
}

func TestUserDrive_Defaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Deleted and state are optional in the upstream payload.
		fmt.Fprint(w, `{"quota": {"total": 100, "remaining": 40}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	quota, err := client.UserDrive(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, quota.Deleted)
	assert.Equal(t, "unknown", quota.State)
	assert.InDelta(t, 60.0, quota.UsedPercentage, 0.001)
}

func TestUserDrive_NoDriveProvisioned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.UserDrive(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

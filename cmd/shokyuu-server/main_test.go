package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/at-ishikawa/shokyuu/internal/cli"
	"github.com/at-ishikawa/shokyuu/internal/config"
	"github.com/at-ishikawa/shokyuu/internal/database"
	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/schemas"
)

func TestJWTSecret(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.ServerConfig
		want      string
		wantError string
	}{
		{
			name: "configured secret",
			cfg:  config.ServerConfig{Environment: "production", JWTSecret: "secret"},
			want: "secret",
		},
		{
			name: "local environment falls back to the development secret",
			cfg:  config.ServerConfig{Environment: "development"},
			want: localJWTSecret,
		},
		{
			name:      "production requires a secret",
			cfg:       config.ServerConfig{Environment: "production"},
			wantError: "SHOKYUU_JWT_SECRET environment variable is required in production",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwtSecret(tt.cfg, zap.NewNop())
			if tt.wantError != "" {
				assert.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	_, err = database.Migrate(t.Context(), db, schemas.Migrations)
	require.NoError(t, err)

	cfg := config.ServerConfig{
		BasePath:      "/shokyuucards",
		Environment:   "development",
		TokenTTLHours: 1,
		AdminToken:    "admin-secret",
	}
	handler, err := newHandler(db, cfg, zap.NewNop())
	require.NoError(t, err)
	httpServer := httptest.NewServer(handler)
	defer httpServer.Close()
	baseURL := httpServer.URL + cfg.BasePath

	t.Run("status", func(t *testing.T) {
		res, err := http.Get(baseURL + "/api/status")
		require.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "active", body["status"])
		assert.Equal(t, "local", body["environment"])
		assert.Equal(t, version, body["version"])
	})

	client := cli.NewAccountClient(baseURL, cfg.AdminToken)
	defer func() { _ = client.Close() }()

	registered, err := client.Register(t.Context(), "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	login, err := client.Login(t.Context(), "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, login.User.ID)

	t.Run("me", func(t *testing.T) {
		user, err := client.Me(t.Context(), login.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		require.NotNil(t, user.LastLogin)
	})

	t.Run("admin users", func(t *testing.T) {
		got, err := client.AdminUsers(t.Context())
		require.NoError(t, err)
		assert.Equal(t, cli.UserStats{Total: 1, Online: 1, NewToday: 1}, got.Stats)
		require.Len(t, got.Users, 1)
		assert.Equal(t, "alice", got.Users[0].Username)
	})

	t.Run("review ledger round trip", func(t *testing.T) {
		store := review.NewRemoteStore(httpServer.Client(), baseURL, login.Token)
		decks := review.Decks{
			"lesson-01": {
				{Source: "あめ", Transliteration: "ame", Translation: "rain"},
				{Source: "かぜ", Transliteration: "kaze", Translation: "wind", Optional: true},
			},
		}
		require.NoError(t, store.Save(t.Context(), decks))

		got, err := store.Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, decks, got)

		local, err := review.NewSQLStore(db, registered.UserID).Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, decks, local)
	})

	t.Run("review ledger rejects an invalid token", func(t *testing.T) {
		store := review.NewRemoteStore(httpServer.Client(), baseURL, "invalid",
			review.WithMaxRetryAttempts(1),
			review.WithRetryDelay(time.Millisecond),
		)
		_, err := store.Load(t.Context())
		require.Error(t, err)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("ledgers are separated per user", func(t *testing.T) {
		_, err := client.Register(t.Context(), "bob", "bob@example.com", "secret456")
		require.NoError(t, err)
		bob, err := client.Login(t.Context(), "bob", "secret456")
		require.NoError(t, err)

		got, err := review.NewRemoteStore(httpServer.Client(), baseURL, bob.Token).Load(t.Context())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

}

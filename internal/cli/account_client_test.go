package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newAccountTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["username"] == "taken" {
			writeTestJSON(w, http.StatusBadRequest, map[string]string{"error": "username or email already exists"})
			return
		}
		writeTestJSON(w, http.StatusCreated, map[string]string{"message": "user created", "userId": "user-1"})
	})
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			writeTestJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]any{
			"message": "login succeeded",
			"token":   "token-1",
			"user":    map[string]string{"id": "user-1", "username": body["username"], "email": "hana@example.com"},
		})
	})
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-1" {
			writeTestJSON(w, http.StatusForbidden, map[string]string{"error": "invalid or expired token"})
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]any{
			"user": map[string]string{"id": "user-1", "username": "hana", "email": "hana@example.com"},
		})
	})
	mux.HandleFunc("GET /api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Admin-Token") != "admin" {
			writeTestJSON(w, http.StatusForbidden, map[string]string{"error": "admin token required"})
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]any{
			"users": []map[string]string{{"id": "user-1", "username": "hana", "email": "hana@example.com"}},
			"stats": map[string]int{"total": 1, "online": 1, "newToday": 0},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestAccountClient_Register(t *testing.T) {
	server := newAccountTestServer(t)
	client := NewAccountClient(server.URL, "")
	defer func() { _ = client.Close() }()

	got, err := client.Register(context.Background(), "hana", "hana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, RegisterResponse{Message: "user created", UserID: "user-1"}, got)

	_, err = client.Register(context.Background(), "taken", "taken@example.com", "secret")
	assert.EqualError(t, err, "response error 400: username or email already exists")
}

func TestAccountClient_Login(t *testing.T) {
	server := newAccountTestServer(t)
	client := NewAccountClient(server.URL, "")
	defer func() { _ = client.Close() }()

	got, err := client.Login(context.Background(), "hana", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-1", got.Token)
	assert.Equal(t, AccountUser{ID: "user-1", Username: "hana", Email: "hana@example.com"}, got.User)

	_, err = client.Login(context.Background(), "hana", "wrong")
	assert.EqualError(t, err, "response error 401: invalid credentials")
}

func TestAccountClient_Me(t *testing.T) {
	server := newAccountTestServer(t)
	client := NewAccountClient(server.URL, "")
	defer func() { _ = client.Close() }()

	got, err := client.Me(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "hana", got.Username)

	_, err = client.Me(context.Background(), "other")
	assert.EqualError(t, err, "response error 403: invalid or expired token")
}

func TestAccountClient_AdminUsers(t *testing.T) {
	server := newAccountTestServer(t)

	tests := []struct {
		name       string
		adminToken string
		want       AdminUsersResponse
		wantErr    string
	}{
		{
			name:       "with admin token",
			adminToken: "admin",
			want: AdminUsersResponse{
				Users: []AccountUser{{ID: "user-1", Username: "hana", Email: "hana@example.com"}},
				Stats: UserStats{Total: 1, Online: 1},
			},
		},
		{
			name:    "without admin token",
			wantErr: "response error 403: admin token required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewAccountClient(server.URL, tt.adminToken)
			defer func() { _ = client.Close() }()

			got, err := client.AdminUsers(context.Background())
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

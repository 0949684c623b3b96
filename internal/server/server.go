// Package server provides the HTTP API for accounts and the Connect RPC handler
// for remotely stored review ledgers.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/at-ishikawa/shokyuu/internal/account"
	"github.com/at-ishikawa/shokyuu/internal/config"
)

const AppName = "Shokyuu Cards"

//go:generate mockgen -source=server.go -destination=../mocks/server/mock_account_service.go -package=mock_server AccountService

// AccountService is the account logic behind the HTTP API.
type AccountService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, login, password string) (string, *account.User, error)
	Authenticate(token string) (*account.Claims, error)
	Me(ctx context.Context, userID string) (*account.User, error)
	ListUsers(ctx context.Context) ([]account.User, account.Stats, error)
}

// Server serves the account API under the configured base path.
type Server struct {
	accounts AccountService
	cfg      config.ServerConfig
	version  string
	logger   *zap.Logger
	now      func() time.Time
}

func New(accounts AccountService, cfg config.ServerConfig, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		accounts: accounts,
		cfg:      cfg,
		version:  version,
		logger:   logger,
		now:      time.Now,
	}
}

// basePath returns the base path without a trailing slash, or "" to serve from the root.
func (s *Server) basePath() string {
	trimmed := strings.Trim(s.cfg.BasePath, "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

// Register mounts the API routes on mux.
func (s *Server) Register(mux *http.ServeMux) {
	base := s.basePath()
	mux.HandleFunc("GET "+base+"/api/status", s.handleStatus)
	mux.HandleFunc("GET "+base+"/api/config", s.handleConfig)
	mux.HandleFunc("POST "+base+"/api/register", s.handleRegister)
	mux.HandleFunc("POST "+base+"/api/login", s.handleLogin)
	mux.HandleFunc("GET "+base+"/api/me", s.handleMe)
	mux.HandleFunc("GET "+base+"/api/admin/users", s.requireAdmin(s.handleListUsers))
	if base != "" {
		mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, base, http.StatusFound)
		})
	}
}

// MountConnect mounts a Connect service handler under the base path.
func (s *Server) MountConnect(mux *http.ServeMux, path string, handler http.Handler) {
	base := s.basePath()
	if base == "" {
		mux.Handle(path, handler)
		return
	}
	mux.Handle(base+path, http.StripPrefix(base, handler))
}

// Handler wraps mux with the CORS and request logging middleware.
func (s *Server) Handler(mux http.Handler) http.Handler {
	return CORS(RequestLogger(mux, s.logger), s.cfg.CORS.AllowedOrigins)
}

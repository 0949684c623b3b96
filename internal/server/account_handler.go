package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/at-ishikawa/shokyuu/internal/account"
)

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	App         string    `json:"app"`
	Timestamp   time.Time `json:"timestamp"`
}

type configResponse struct {
	IsLocal bool   `json:"isLocal"`
	App     string `json:"app"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userSummary `json:"user"`
}

type meResponse struct {
	User account.User `json:"user"`
}

type usersResponse struct {
	Users []account.User `json:"users"`
	Stats account.Stats  `json:"stats"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	environment := "production"
	if s.cfg.IsLocal() {
		environment = "local"
	}
	s.writeJSON(w, http.StatusOK, statusResponse{
		Status:      "active",
		Version:     s.version,
		Environment: environment,
		App:         AppName,
		Timestamp:   s.now().UTC(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, configResponse{
		IsLocal: s.cfg.IsLocal(),
		App:     AppName,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeAccountError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, registerResponse{
		Message: "user created",
		UserID:  id,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeAccountError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loginResponse{
		Message: "login succeeded",
		Token:   token,
		User: userSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r.Header)
	if token == "" {
		s.writeError(w, http.StatusUnauthorized, "access token required")
		return
	}
	claims, err := s.accounts.Authenticate(token)
	if err != nil {
		s.writeError(w, http.StatusForbidden, account.ErrInvalidToken.Error())
		return
	}

	user, err := s.accounts.Me(r.Context(), claims.UserID)
	if err != nil {
		s.writeAccountError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, meResponse{User: *user})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, stats, err := s.accounts.ListUsers(r.Context())
	if err != nil {
		s.writeAccountError(w, r, err)
		return
	}
	if users == nil {
		users = []account.User{}
	}
	s.writeJSON(w, http.StatusOK, usersResponse{Users: users, Stats: stats})
}

// requireAdmin checks the X-Admin-Token header when an admin token is configured.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminToken != "" {
			got := r.Header.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.AdminToken)) != 1 {
				s.writeError(w, http.StatusForbidden, "admin token required")
				return
			}
		}
		next(w, r)
	}
}

func bearerToken(header http.Header) string {
	value := header.Get("Authorization")
	scheme, token, ok := strings.Cut(value, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (s *Server) writeAccountError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, account.ErrMissingFields), errors.Is(err, account.ErrUserExists):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, account.ErrInvalidCredentials):
		s.writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, account.ErrInvalidToken):
		s.writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, account.ErrUserNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("account request failed",
			zap.String("url", r.URL.Path),
			zap.Error(err),
		)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to write a response", zap.Error(err))
	}
}

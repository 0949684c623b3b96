package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/at-ishikawa/shokyuu/internal/account"
	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/internal/reviewrpc"
)

// TokenAuthenticator verifies bearer tokens.
type TokenAuthenticator interface {
	Authenticate(token string) (*account.Claims, error)
}

// ReviewHandler implements the reviewrpc.ReviewServiceHandler interface.
// Every call works on the ledger of the user owning the bearer token.
type ReviewHandler struct {
	auth      TokenAuthenticator
	storeFor  func(userID string) review.Store
	validator *validator.Validate
	logger    *zap.Logger
}

var _ reviewrpc.ReviewServiceHandler = (*ReviewHandler)(nil)

func NewReviewHandler(auth TokenAuthenticator, storeFor func(userID string) review.Store, logger *zap.Logger) *ReviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ReviewHandler{
		auth:      auth,
		storeFor:  storeFor,
		validator: validate,
		logger:    logger,
	}
}

// GetLedger returns the caller's whole review ledger.
func (h *ReviewHandler) GetLedger(
	ctx context.Context,
	req *connect.Request[reviewrpc.GetLedgerRequest],
) (*connect.Response[reviewrpc.GetLedgerResponse], error) {
	userID, err := h.authenticate(req.Header())
	if err != nil {
		return nil, err
	}

	decks, loadErr := h.storeFor(userID).Load(ctx)
	if loadErr != nil {
		h.logger.Error("failed to load a review ledger", zap.String("user_id", userID), zap.Error(loadErr))
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("load review ledger: %w", loadErr))
	}
	return connect.NewResponse(&reviewrpc.GetLedgerResponse{
		Lessons: review.ToLedgerLessons(decks),
	}), nil
}

// SaveLedger replaces the caller's review ledger.
func (h *ReviewHandler) SaveLedger(
	ctx context.Context,
	req *connect.Request[reviewrpc.SaveLedgerRequest],
) (*connect.Response[reviewrpc.SaveLedgerResponse], error) {
	userID, err := h.authenticate(req.Header())
	if err != nil {
		return nil, err
	}
	if err := h.validateRequest(req.Msg); err != nil {
		return nil, err
	}

	decks := review.FromLedgerLessons(req.Msg.Lessons)
	if saveErr := h.storeFor(userID).Save(ctx, decks); saveErr != nil {
		h.logger.Error("failed to save a review ledger", zap.String("user_id", userID), zap.Error(saveErr))
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("save review ledger: %w", saveErr))
	}

	saved := 0
	for _, entries := range decks {
		saved += len(entries)
	}
	return connect.NewResponse(&reviewrpc.SaveLedgerResponse{Saved: saved}), nil
}

func (h *ReviewHandler) authenticate(header http.Header) (string, *connect.Error) {
	token := bearerToken(header)
	if token == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errors.New("access token required"))
	}
	claims, err := h.auth.Authenticate(token)
	if err != nil {
		return "", connect.NewError(connect.CodeUnauthenticated, err)
	}
	return claims.UserID, nil
}

func (h *ReviewHandler) validateRequest(msg any) *connect.Error {
	err := h.validator.Struct(msg)
	if err == nil {
		return nil
	}

	connectErr := connect.NewError(connect.CodeInvalidArgument, err)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var fieldViolations []*errdetails.BadRequest_FieldViolation
		for _, v := range validationErrors {
			fieldViolations = append(fieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       v.Namespace(),
				Description: v.Error(),
			})
		}
		if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
			FieldViolations: fieldViolations,
		}); detailErr == nil {
			connectErr.AddDetail(detail)
		}
	}
	return connectErr
}

package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/currency"
	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/pkg/api"
)

var (
	errNotFound         = errors.New("not found")
	errStoreUnavailable = errors.New("storage unavailable, retry later")
)

// toConnectError maps domain errors to tagged connect errors. Anything
// unrecognized came from the store and is reported as retryable without
// exposing its details.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return api.NewError(api.KindInvalidInput, err)
	case errors.Is(err, currency.ErrUnknownCurrency):
		return api.NewError(api.KindInvalidInput, err)
	case errors.Is(err, auth.ErrEmailExists), errors.Is(err, storage.ErrEmailTaken):
		return api.NewError(api.KindDuplicateIdentity, auth.ErrEmailExists)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return api.NewError(api.KindInvalidCredentials, auth.ErrInvalidCredentials)
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return api.NewError(api.KindUnauthenticated, err)
	case errors.Is(err, storage.ErrNotFound):
		return api.NewError(api.KindNotFound, errNotFound)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return api.NewError(api.KindStoreUnavailable, errStoreUnavailable)
	}
}

func invalidArgument(field, reason string) error {
	return api.NewError(api.KindInvalidInput, &models.ValidationError{Field: field, Reason: reason})
}

// requireUser returns the authenticated caller, or an Unauthenticated
// error if the access gate did not run.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", api.NewError(api.KindUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

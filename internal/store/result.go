package store

import (
	"context"
	"errors"
	"net/http"

	"budgetplanner/internal/client"
	apperrors "budgetplanner/internal/errors"
)

// Result is the outcome of a store operation.
type Result[T any] struct {
	Value   T
	Success bool
	// Error is a message fit for display; empty on success.
	Error string
	// ValidationErrors maps lower camelCase field names to messages.
	ValidationErrors map[string]string
	// RequiresManualLogin is set by Register when the account was created but
	// the automatic login that follows failed.
	RequiresManualLogin bool
	// Err is the classified failure, for errors.Is checks against the
	// sentinels in the errors package.
	Err error
}

func succeed[T any](v T) Result[T] {
	return Result[T]{Value: v, Success: true}
}

// fail classifies err, records its message as the store's last error (unless
// gen is stale) and builds the failed Result. extra mutations are applied in
// the same commit.
func fail[T any](s *Store, gen uint64, op string, err error, extra ...func(*State)) Result[T] {
	appErr := classify(err)
	s.logFailure(op, appErr, err)
	s.commit(gen, func(st *State) {
		st.Error = appErr.Message
		for _, fn := range extra {
			fn(st)
		}
	})
	return Result[T]{
		Error:            appErr.Message,
		ValidationErrors: appErr.Fields,
		Err:              appErr,
	}
}

func (s *Store) logFailure(op string, appErr *apperrors.AppError, cause error) {
	switch {
	case errors.Is(appErr, apperrors.ErrServer), errors.Is(appErr, apperrors.ErrNetwork):
		s.log.Errorw("operation failed", "op", op, "code", appErr.Code, "error", cause)
	default:
		s.log.Warnw("operation failed", "op", op, "code", appErr.Code, "error", cause)
	}
}

// classify maps any failure onto the error taxonomy.
func classify(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	var statusErr *client.StatusError
	switch {
	case errors.As(err, &statusErr):
		appErr := apperrors.FromStatus(statusErr.StatusCode, statusErr.Body)
		appErr.Internal = err
		return appErr
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrNetwork, "The server took too long to respond"), err)
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrNetwork, "Request was canceled"), err)
	}
	return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrServer, "Unexpected error"), err)
}

// classifyLogin is classify with 401 meaning wrong credentials rather than an
// expired session.
func classifyLogin(err error) *apperrors.AppError {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		return apperrors.Wrap(apperrors.ErrInvalidCredentials, err)
	}
	return classify(err)
}

// invalid builds a local validation failure.
func invalid(fields map[string]string) error {
	return apperrors.WithFields(apperrors.ErrValidation, fields)
}

package apperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs an application error. Client errors are logged at warn level.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	logger := ctxlog.From(ctx)
	if HTTPStatus(err) < http.StatusInternalServerError {
		logger.Warn("request rejected", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}

// HTTPStatus maps an error to a response status code by its tag
func HTTPStatus(err error) int {
	switch {
	case goerr.HasTag(err, model.ErrTagDatasetUnavailable):
		return http.StatusInternalServerError
	case goerr.HasTag(err, model.ErrTagInvalidCriteria):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.ErrTagNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the message safe to show to a client. Internal failures
// keep their details in the log only.
func Message(err error) string {
	switch {
	case goerr.HasTag(err, model.ErrTagDatasetUnavailable):
		return model.ErrDatasetNotLoaded.Error()
	case HTTPStatus(err) < http.StatusInternalServerError:
		return rootMessage(err)
	default:
		return http.StatusText(http.StatusInternalServerError)
	}
}

// rootMessage returns the message of the innermost error still carrying a
// client error tag
func rootMessage(err error) string {
	msg := err.Error()
	for e := err; e != nil; e = errors.Unwrap(e) {
		if goerr.HasTag(e, model.ErrTagInvalidCriteria) || goerr.HasTag(e, model.ErrTagNotFound) {
			msg = e.Error()
		}
	}
	return msg
}

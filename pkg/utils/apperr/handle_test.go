package apperr_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/utils/apperr"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid criteria",
			err:  goerr.Wrap(goerr.New("year filter must be an integer", goerr.T(model.ErrTagInvalidCriteria)), "failed to filter"),
			want: http.StatusBadRequest,
		},
		{
			name: "not found",
			err:  goerr.New("unknown chart", goerr.T(model.ErrTagNotFound)),
			want: http.StatusNotFound,
		},
		{
			name: "dataset unavailable",
			err:  goerr.Wrap(model.ErrDatasetNotLoaded, "failed to get dataset"),
			want: http.StatusInternalServerError,
		},
		{
			name: "missing dataset file stays a server error",
			err: goerr.Wrap(goerr.New("dataset file not found", goerr.T(model.ErrTagNotFound)),
				"Data not loaded", goerr.T(model.ErrTagDatasetUnavailable)),
			want: http.StatusInternalServerError,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, apperr.HTTPStatus(tc.err), tc.want)
		})
	}
}

func TestMessage(t *testing.T) {
	t.Run("dataset unavailable", func(t *testing.T) {
		err := goerr.Wrap(model.ErrDatasetNotLoaded, "failed to get dataset")
		gt.Equal(t, apperr.Message(err), "Data not loaded")
	})

	t.Run("client error keeps the tagged message", func(t *testing.T) {
		err := goerr.Wrap(goerr.New("year filter must be an integer", goerr.T(model.ErrTagInvalidCriteria)), "failed to filter")
		gt.Equal(t, apperr.Message(err), "year filter must be an integer")
	})

	t.Run("internal error is hidden", func(t *testing.T) {
		gt.Equal(t, apperr.Message(errors.New("disk on fire")), "Internal Server Error")
	})
}

func TestHandle(t *testing.T) {
	apperr.Handle(context.Background(), nil)
	apperr.Handle(context.Background(), errors.New("boom"))
}

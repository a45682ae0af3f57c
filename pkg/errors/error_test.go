package errors_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	pkgErrors "github.com/flexdb/flexdb-server/pkg/errors"
)

func TestNewAppError(t *testing.T) {
	cause := pkgErrors.New("connection reset")
	err := pkgErrors.NewAppError(pkgErrors.ErrInternal, "failed to list fields", cause)

	assert.Equal(t, pkgErrors.ErrInternal, err.Code())
	assert.Equal(t, "failed to list fields: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrap(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, pkgErrors.Wrap(nil, "ignored"))
	})

	t.Run("plain errors become internal", func(t *testing.T) {
		err := pkgErrors.Wrap(pkgErrors.New("boom"), "failed to insert customer")

		var appErr *pkgErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, pkgErrors.ErrInternal, appErr.Code())
	})

	t.Run("an existing code is kept", func(t *testing.T) {
		inner := pkgErrors.NewAppError(pkgErrors.ErrInvalidArgument, "invalid field id", nil)
		err := pkgErrors.Wrap(inner, "failed to delete field")

		var appErr *pkgErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, pkgErrors.ErrInvalidArgument, appErr.Code())
	})
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, pkgErrors.ToHTTPStatus(pkgErrors.ErrInternal))
	assert.Equal(t, http.StatusNotFound, pkgErrors.ToHTTPStatus(pkgErrors.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, pkgErrors.ToHTTPStatus(pkgErrors.ErrInvalidArgument))
	assert.Equal(t, http.StatusInternalServerError, pkgErrors.ToHTTPStatus("UNKNOWN_CODE"))
}

func TestToHTTPError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, pkgErrors.ToHTTPError(nil))
	})

	t.Run("app errors map by code", func(t *testing.T) {
		err := pkgErrors.NewAppError(pkgErrors.ErrInvalidArgument, "invalid field id", nil)

		httpErr := pkgErrors.ToHTTPError(err)

		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("echo errors pass through unchanged", func(t *testing.T) {
		echoErr := echo.NewHTTPError(http.StatusTeapot, "short and stout")

		assert.Same(t, echoErr, pkgErrors.ToHTTPError(echoErr))
	})

	t.Run("plain errors become 500", func(t *testing.T) {
		httpErr := pkgErrors.ToHTTPError(pkgErrors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	})
}

func TestLogError(t *testing.T) {
	t.Run("includes the code for app errors", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		logger := zap.New(core)

		err := pkgErrors.NewAppError(pkgErrors.ErrNotFound, "failed to get field", nil)
		pkgErrors.LogError(logger, err, "lookup failed", zap.String("path", "/fields"))

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "lookup failed", entries[0].Message)

		fields := entries[0].ContextMap()
		assert.Equal(t, pkgErrors.ErrNotFound, fields["error_code"])
		assert.Equal(t, "/fields", fields["path"])
	})

	t.Run("nil errors are not logged", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		pkgErrors.LogError(zap.New(core), nil, "ignored")

		assert.Zero(t, logs.Len())
	})
}

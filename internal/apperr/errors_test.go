package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("month must be between 1 and 12")

	assert.Equal(t, "month must be between 1 and 12", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("strconv: bad digit")
	err := apperr.NewValidationWrap("invalid page", inner)

	assert.Equal(t, "invalid page: strconv: bad digit", err.Error())
	assert.True(t, errors.Is(err, inner))
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("unknown content type")

	wrapped := fmt.Errorf("select sources: %w", original)
	doubleWrapped := fmt.Errorf("search: %w", wrapped)

	var ve *apperr.ValidationError
	if assert.True(t, errors.As(doubleWrapped, &ve)) {
		assert.Equal(t, "unknown content type", ve.Message)
	}
	assert.True(t, apperr.IsValidation(doubleWrapped))
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	wrapped := fmt.Errorf("storage error: %w", fmt.Errorf("connection refused"))

	assert.False(t, apperr.IsValidation(wrapped))
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation error",
			err:        apperr.NewValidation("bad month"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error":"bad month"`,
		},
		{
			name:       "not found",
			err:        fmt.Errorf("slug %q: %w", "abc", apperr.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `"title":"not found"`,
		},
		{
			name:       "echo http error",
			err:        echo.NewHTTPError(http.StatusUnauthorized, "missing token"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"error":"missing token"`,
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"error":"internal server error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			apperr.GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGlobalErrorHandler_EchoesRequestID(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Response().Header().Set(echo.HeaderXRequestID, "req-42")

	apperr.GlobalErrorHandler()(errors.New("boom"), c)

	assert.Contains(t, rec.Body.String(), `"requestId":"req-42"`)
}

func TestResolve_WrappedValidation(t *testing.T) {
	err := fmt.Errorf("search: %w", apperr.NewValidationWrap("invalid month", errors.New("strconv")))

	status, body := apperr.Resolve(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid month", body.Error)
	assert.Equal(t, "validation error", body.Title)
}

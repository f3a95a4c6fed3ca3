package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every non-search error.
type ErrorResponse struct {
	Error     string `json:"error"`
	Title     string `json:"title,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Resolve maps err to a status code and response body. Unknown errors become
// a 500 with a generic message.
func Resolve(err error) (int, ErrorResponse) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorResponse{Error: ve.Message, Title: "validation error"}
	}

	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Title: "not found"}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, ErrorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := Resolve(err)
		body.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)
		if status >= http.StatusInternalServerError {
			slog.Error("Unhandled error", "error", err, "uri", c.Request().RequestURI, "request_id", body.RequestID)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

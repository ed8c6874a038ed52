// Package httperr maps service errors onto HTTP responses.
package httperr

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avnishka/BookBee/util/apperr"
)

var statusByCode = map[apperr.ErrCode]int{
	apperr.ErrUnauthorized:       http.StatusForbidden,
	apperr.ErrForbidden:          http.StatusForbidden,
	apperr.ErrInvalidState:       http.StatusConflict,
	apperr.ErrInvalidInput:       http.StatusBadRequest,
	apperr.ErrSelfTransaction:    http.StatusConflict,
	apperr.ErrSelfCredit:         http.StatusConflict,
	apperr.ErrSelfChat:           http.StatusConflict,
	apperr.ErrNotEntitled:        http.StatusForbidden,
	apperr.ErrAlreadyCredited:    http.StatusConflict,
	apperr.ErrAlreadyUnavailable: http.StatusConflict,
	apperr.ErrEmptyCart:          http.StatusConflict,
	apperr.ErrNotFound:           http.StatusNotFound,
}

// Status returns 500 for errors without a code.
func Status(err error) int {
	if s, ok := statusByCode[apperr.Code(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Write renders err. Infrastructure errors are logged and hidden from the client.
func Write(c echo.Context, log *slog.Logger, op string, err error) error {
	code := apperr.Code(err)
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Error(op,
			"err", err,
			"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"path", c.Path(),
			"method", c.Request().Method,
		)
		return c.JSON(status, echo.Map{"message": "internal error"})
	}
	log.Warn(op, "code", code, "err", err)
	return c.JSON(status, echo.Map{"message": err.Error(), "code": code})
}

func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
}

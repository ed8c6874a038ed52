package profile

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avnishka/BookBee/app/echoServer/httperr"
	"github.com/avnishka/BookBee/app/echoServer/jwtx"
	profilesvc "github.com/avnishka/BookBee/service/profile"
)

type Controller struct {
	Svc profilesvc.Service
	Log *slog.Logger
}

// GET /v1/profile
func (h *Controller) Get(c echo.Context) error {
	p, err := h.Svc.Get(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.Write(c, h.Log, "profile", err)
	}
	return c.JSON(http.StatusOK, p)
}

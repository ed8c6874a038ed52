package checkout

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avnishka/BookBee/app/echoServer/httperr"
	"github.com/avnishka/BookBee/app/echoServer/jwtx"
	checkoutsvc "github.com/avnishka/BookBee/service/checkout"
)

type Controller struct {
	Svc checkoutsvc.Service
	Log *slog.Logger
}

// GET /v1/checkout
func (h *Controller) Preview(c echo.Context) error {
	p, err := h.Svc.Preview(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.Write(c, h.Log, "checkout preview", err)
	}
	return c.JSON(http.StatusOK, p)
}

// GET /v1/checkout/qr
func (h *Controller) QR(c echo.Context) error {
	png, err := h.Svc.QR(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.Write(c, h.Log, "checkout qr", err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// POST /v1/checkout/confirm
func (h *Controller) Confirm(c echo.Context) error {
	res, err := h.Svc.Confirm(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.Write(c, h.Log, "checkout confirm", err)
	}
	return c.JSON(http.StatusOK, res)
}

// GET /v1/orders
func (h *Controller) Orders(c echo.Context) error {
	rows, err := h.Svc.History(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.Write(c, h.Log, "order history", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

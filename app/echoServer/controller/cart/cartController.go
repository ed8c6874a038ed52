package cart

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avnishka/BookBee/app/echoServer/httperr"
	"github.com/avnishka/BookBee/app/echoServer/jwtx"
	cartsvc "github.com/avnishka/BookBee/service/cart"
)

type Controller struct {
	Svc cartsvc.Service
	Log *slog.Logger
}

// GET /v1/cart
func (h *Controller) View(c echo.Context) error {
	v, err := h.Svc.View(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.Write(c, h.Log, "cart view", err)
	}
	return c.JSON(http.StatusOK, v)
}

// POST /v1/cart/items/:bookId
func (h *Controller) Add(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || id <= 0 {
		return httperr.BadRequest(c, "invalid book id")
	}
	if err := h.Svc.Add(c.Request().Context(), jwtx.UserID(c), id); err != nil {
		return httperr.Write(c, h.Log, "cart add", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "added", "book_id": id})
}

// DELETE /v1/cart/items/:bookId
func (h *Controller) Remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || id <= 0 {
		return httperr.BadRequest(c, "invalid book id")
	}
	if err := h.Svc.Remove(c.Request().Context(), jwtx.UserID(c), id); err != nil {
		return httperr.Write(c, h.Log, "cart remove", err)
	}
	return c.NoContent(http.StatusNoContent)
}

package chat

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/avnishka/BookBee/app/echoServer/httperr"
	"github.com/avnishka/BookBee/app/echoServer/jwtx"
	chatsvc "github.com/avnishka/BookBee/service/chat"
)

type MessageReq struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type Controller struct {
	Svc chatsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func roomID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// GET /v1/chats
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.ListRooms(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.Write(c, h.Log, "list rooms", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/chats/start/:username
func (h *Controller) Start(c echo.Context) error {
	room, err := h.Svc.StartWithUsername(c.Request().Context(), jwtx.UserID(c), c.Param("username"))
	if err != nil {
		return httperr.Write(c, h.Log, "start chat", err)
	}
	return c.JSON(http.StatusOK, room)
}

// GET /v1/chats/:id
func (h *Controller) Open(c echo.Context) error {
	id, ok := roomID(c)
	if !ok {
		return httperr.BadRequest(c, "invalid room id")
	}
	view, err := h.Svc.OpenRoom(c.Request().Context(), id, jwtx.UserID(c))
	if err != nil {
		return httperr.Write(c, h.Log, "open room", err)
	}
	return c.JSON(http.StatusOK, view)
}

// POST /v1/chats/:id/messages
func (h *Controller) Post(c echo.Context) error {
	id, ok := roomID(c)
	if !ok {
		return httperr.BadRequest(c, "invalid room id")
	}
	var req MessageReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	m, err := h.Svc.PostMessage(c.Request().Context(), id, jwtx.UserID(c), req.Text)
	if err != nil {
		return httperr.Write(c, h.Log, "post message", err)
	}
	return c.JSON(http.StatusCreated, m)
}

// DELETE /v1/chats/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := roomID(c)
	if !ok {
		return httperr.BadRequest(c, "invalid room id")
	}
	if err := h.Svc.DeleteRoom(c.Request().Context(), id, jwtx.UserID(c)); err != nil {
		return httperr.Write(c, h.Log, "delete room", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /v1/chats/unread
func (h *Controller) Unread(c echo.Context) error {
	n, err := h.Svc.UnreadCount(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.Write(c, h.Log, "unread count", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread": n})
}

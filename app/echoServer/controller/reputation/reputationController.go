package reputation

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/avnishka/BookBee/app/echoServer/httperr"
	"github.com/avnishka/BookBee/app/echoServer/jwtx"
	reputationsvc "github.com/avnishka/BookBee/service/reputation"
)

type CreditReq struct {
	Message string `json:"message" validate:"max=500"`
}

type Controller struct {
	Svc reputationsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/users/:id/credits
func (h *Controller) Credit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httperr.BadRequest(c, "invalid user id")
	}
	var req CreditReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	credit, err := h.Svc.GiveCredit(c.Request().Context(), jwtx.UserID(c), id, req.Message)
	if err != nil {
		return httperr.Write(c, h.Log, "give credit", err)
	}
	return c.JSON(http.StatusCreated, credit)
}

// GET /v1/users/:id/score
func (h *Controller) Score(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httperr.BadRequest(c, "invalid user id")
	}
	score, err := h.Svc.TotalScore(c.Request().Context(), id)
	if err != nil {
		return httperr.Write(c, h.Log, "total score", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": id, "score": score})
}

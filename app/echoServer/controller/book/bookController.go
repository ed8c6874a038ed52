package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/avnishka/BookBee/app/echoServer/httperr"
	"github.com/avnishka/BookBee/app/echoServer/jwtx"
	"github.com/avnishka/BookBee/model"
	booksvc "github.com/avnishka/BookBee/service/book"
	reputationsvc "github.com/avnishka/BookBee/service/reputation"
)

type Controller struct {
	Svc        booksvc.Service
	Reputation reputationsvc.Service
	V          *validator.Validate
	Log        *slog.Logger
}

// GET /v1/books?q=&location=&genre=&min_price=&max_price=&sort=&mode=
func (h *Controller) List(c echo.Context) error {
	f := model.BookFilter{
		Query:    c.QueryParam("q"),
		Location: c.QueryParam("location"),
		Genre:    c.QueryParam("genre"),
		Sort:     model.BookSort(c.QueryParam("sort")),
		Mode:     model.ListMode(c.QueryParam("mode")),
	}
	var err error
	if f.MinPrice, err = priceParam(c, "min_price"); err != nil {
		return httperr.BadRequest(c, "invalid min_price")
	}
	if f.MaxPrice, err = priceParam(c, "max_price"); err != nil {
		return httperr.BadRequest(c, "invalid max_price")
	}

	rows, err := h.Svc.Search(c.Request().Context(), f)
	if err != nil {
		return httperr.Write(c, h.Log, "book search", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

func priceParam(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// POST /v1/books
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	b, err := h.Svc.Create(c.Request().Context(), jwtx.UserID(c), model.NewBook{
		Title:           req.Title,
		Price:           *req.Price,
		SecurityDeposit: req.SecurityDeposit,
		Location:        req.Location,
		Description:     req.Description,
		Genre:           req.Genre,
		TransactionType: model.TransactionType(req.TransactionType),
	})
	if err != nil {
		return httperr.Write(c, h.Log, "book create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httperr.BadRequest(c, "invalid id")
	}
	d, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return httperr.Write(c, h.Log, "book detail", err)
	}
	return c.JSON(http.StatusOK, d)
}

// DELETE /v1/books/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httperr.BadRequest(c, "invalid id")
	}
	if err := h.Svc.Delete(c.Request().Context(), jwtx.UserID(c), id); err != nil {
		return httperr.Write(c, h.Log, "book delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /v1/books/:id/reviews
func (h *Controller) Review(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httperr.BadRequest(c, "invalid id")
	}
	var req ReviewReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "invalid json")
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	rv, err := h.Reputation.SubmitReview(c.Request().Context(), jwtx.UserID(c), id, req.Rating, req.Comment)
	if err != nil {
		return httperr.Write(c, h.Log, "submit review", err)
	}
	return c.JSON(http.StatusCreated, rv)
}

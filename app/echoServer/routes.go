package echoServer

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/avnishka/BookBee/app/echoServer/controller/book"
	"github.com/avnishka/BookBee/app/echoServer/controller/cart"
	"github.com/avnishka/BookBee/app/echoServer/controller/chat"
	"github.com/avnishka/BookBee/app/echoServer/controller/checkout"
	"github.com/avnishka/BookBee/app/echoServer/controller/profile"
	"github.com/avnishka/BookBee/app/echoServer/controller/reputation"
	"github.com/avnishka/BookBee/app/echoServer/jwtx"
	"github.com/avnishka/BookBee/util/metrics"
)

type C struct {
	Book       *book.Controller
	Cart       *cart.Controller
	Checkout   *checkout.Controller
	Reputation *reputation.Controller
	Chat       *chat.Controller
	Profile    *profile.Controller
	JWTSecret  string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Auth
	auth := e.Group("/v1", jwtx.Auth(c.JWTSecret)...)

	// Catalog
	auth.GET("/books", c.Book.List)
	auth.POST("/books", c.Book.Create)
	auth.GET("/books/:id", c.Book.Detail)
	auth.DELETE("/books/:id", c.Book.Delete)
	auth.POST("/books/:id/reviews", c.Book.Review)

	// Cart & checkout
	auth.GET("/cart", c.Cart.View)
	auth.POST("/cart/items/:bookId", c.Cart.Add)
	auth.DELETE("/cart/items/:bookId", c.Cart.Remove)
	auth.GET("/checkout", c.Checkout.Preview)
	auth.GET("/checkout/qr", c.Checkout.QR)
	auth.POST("/checkout/confirm", c.Checkout.Confirm)
	auth.GET("/orders", c.Checkout.Orders)

	// Reputation
	auth.POST("/users/:id/credits", c.Reputation.Credit)
	auth.GET("/users/:id/score", c.Reputation.Score)
	auth.GET("/profile", c.Profile.Get)

	// Messaging
	auth.GET("/chats", c.Chat.List)
	auth.GET("/chats/unread", c.Chat.Unread)
	auth.POST("/chats/start/:username", c.Chat.Start)
	auth.GET("/chats/:id", c.Chat.Open)
	auth.DELETE("/chats/:id", c.Chat.Delete)
	auth.POST("/chats/:id/messages", c.Chat.Post)
}

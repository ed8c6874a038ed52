package jwtx

import (
	"net/http"

	gojwt "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/avnishka/BookBee/util/jwt"
)

const userIDKey = "user_id"

// Auth validates the bearer token and stores the caller id under user_id.
func Auth(secret string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		echojwt.WithConfig(echojwt.Config{
			ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
				return jwt.Parse(auth, secret)
			},
		}),
		func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				tok, _ := c.Get("user").(*gojwt.Token)
				id, err := jwt.UserID(tok)
				if err != nil {
					c.Logger().Warnf("[AUTH] bad subject req_id=%s err=%v", c.Response().Header().Get(echo.HeaderXRequestID), err)
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
				}
				c.Set(userIDKey, id)
				return next(c)
			}
		},
	}
}

// UserID returns the authenticated caller, 0 outside Auth.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}

// SetUserID is used by handlers' tests to bypass token parsing.
func SetUserID(c echo.Context, id int64) { c.Set(userIDKey, id) }

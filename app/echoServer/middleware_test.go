package echoServer_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/avnishka/BookBee/app/echoServer"
	"github.com/avnishka/BookBee/app/echoServer/jwtx"
	"github.com/avnishka/BookBee/util/logger"
)

func TestSlog_RequestLines(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := echo.New()
	echoServer.RegisterMiddlewares(e, logger.FromZap(zap.New(core)))
	e.GET("/v1/cart", func(c echo.Context) error {
		jwtx.SetUserID(c, 9)
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/boom", func(c echo.Context) error { return errors.New("db down") })

	for _, path := range []string{"/v1/cart", "/missing", "/boom"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.FilterMessage("http").All()
	require.Len(t, entries, 3)

	ok := entries[0].ContextMap()
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "/v1/cart", ok["route"])
	require.Equal(t, int64(http.StatusNoContent), ok["status"])
	require.Equal(t, int64(9), ok["user_id"])
	require.NotEmpty(t, ok["req_id"])

	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.NotContains(t, entries[1].ContextMap(), "user_id")

	boom := entries[2].ContextMap()
	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	require.Equal(t, int64(http.StatusInternalServerError), boom["status"])
	require.Equal(t, "db down", boom["err"])
}

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/avnishka/BookBee/app/echoServer"
	bookctrl "github.com/avnishka/BookBee/app/echoServer/controller/book"
	cartctrl "github.com/avnishka/BookBee/app/echoServer/controller/cart"
	chatctrl "github.com/avnishka/BookBee/app/echoServer/controller/chat"
	checkoutctrl "github.com/avnishka/BookBee/app/echoServer/controller/checkout"
	profilectrl "github.com/avnishka/BookBee/app/echoServer/controller/profile"
	reputationctrl "github.com/avnishka/BookBee/app/echoServer/controller/reputation"
	"github.com/avnishka/BookBee/app/echoServer/validation"
	"github.com/avnishka/BookBee/config"
	bookrepo "github.com/avnishka/BookBee/repository/book"
	"github.com/avnishka/BookBee/repository/cache"
	cartrepo "github.com/avnishka/BookBee/repository/cart"
	chatrepo "github.com/avnishka/BookBee/repository/chat"
	creditrepo "github.com/avnishka/BookBee/repository/credit"
	"github.com/avnishka/BookBee/repository/events"
	orderrepo "github.com/avnishka/BookBee/repository/order"
	reviewrepo "github.com/avnishka/BookBee/repository/review"
	userrepo "github.com/avnishka/BookBee/repository/user"
	booksvc "github.com/avnishka/BookBee/service/book"
	cartsvc "github.com/avnishka/BookBee/service/cart"
	chatsvc "github.com/avnishka/BookBee/service/chat"
	checkoutsvc "github.com/avnishka/BookBee/service/checkout"
	paymentsvc "github.com/avnishka/BookBee/service/payment"
	profilesvc "github.com/avnishka/BookBee/service/profile"
	reputationsvc "github.com/avnishka/BookBee/service/reputation"
	"github.com/avnishka/BookBee/util/database"
	"github.com/avnishka/BookBee/util/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB: *sql.DB over pgx
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return err
	}
	defer db.Close()

	bookCache := cache.Noop()
	if cfg.RedisAddr != "" {
		rdb, err := cache.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("redis unavailable, book cache disabled", "err", err)
		} else {
			defer rdb.Close()
			bookCache = cache.NewRedis(rdb, cfg.BookCacheTTL, log)
		}
	}

	publisher := events.Noop()
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.InitProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Warn("kafka unavailable, events dropped", "err", err)
		} else {
			defer producer.Close()
			publisher = events.NewKafka(producer, cfg.KafkaTopic, log)
		}
	}

	// repos
	br := bookrepo.New(db.DB)
	cr := cartrepo.New(db.DB)
	or := orderrepo.New(db.DB)
	rr := reviewrepo.New(db.DB)
	crr := creditrepo.New(db.DB)
	chr := chatrepo.New(db.DB)
	ur := userrepo.New(db.DB)

	// services
	ps := paymentsvc.New(cfg.Payment)
	bs := booksvc.New(br, rr, bookCache, log)
	chs := chatsvc.New(chr, ur, log)
	cs := cartsvc.New(cr, br, chs, log)
	cos := checkoutsvc.New(db.DB, cr, br, or, ps, bookCache, publisher, log)
	rs := reputationsvc.New(or, br, ur, rr, crr, bookCache, publisher,
		reputationsvc.Options{CreditOnePerPair: cfg.CreditOnePerPair}, log)
	prs := profilesvc.New(ur, br, rs, chs)

	// controllers
	v := validator.New()
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New(v)
	echoServer.RegisterMiddlewares(e, log)
	echoServer.Register(e, echoServer.C{
		Book:       &bookctrl.Controller{Svc: bs, Reputation: rs, V: v, Log: log},
		Cart:       &cartctrl.Controller{Svc: cs, Log: log},
		Checkout:   &checkoutctrl.Controller{Svc: cos, Log: log},
		Reputation: &reputationctrl.Controller{Svc: rs, V: v, Log: log},
		Chat:       &chatctrl.Controller{Svc: chs, V: v, Log: log},
		Profile:    &profilectrl.Controller{Svc: prs, Log: log},
		JWTSecret:  cfg.JWTSecret,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

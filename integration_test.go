//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"github.com/avnishka/BookBee/config"
	"github.com/avnishka/BookBee/model"
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
	reputationsvc "github.com/avnishka/BookBee/service/reputation"
	"github.com/avnishka/BookBee/util/apperr"
	"github.com/avnishka/BookBee/util/database"
	"github.com/avnishka/BookBee/util/logger"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("bookbee"),
		postgres.WithUsername("bookbee"),
		postgres.WithPassword("bookbee"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := database.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db.DB))
	// second run must be a no-op
	require.NoError(t, database.Migrate(ctx, db.DB))
	return db
}

func seedUser(t *testing.T, db *database.DB, username string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO users (username) VALUES ($1) RETURNING id`, username).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestMarketplaceFlow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	log := logger.FromZap(zaptest.NewLogger(t))

	br := bookrepo.New(db.DB)
	cr := cartrepo.New(db.DB)
	or := orderrepo.New(db.DB)
	rr := reviewrepo.New(db.DB)
	chr := chatrepo.New(db.DB)
	ur := userrepo.New(db.DB)

	books := booksvc.New(br, rr, cache.Noop(), log)
	chats := chatsvc.New(chr, ur, log)
	carts := cartsvc.New(cr, br, chats, log)
	pay := paymentsvc.New(config.Payment{Scheme: "upi", MerchantID: "m@upi", PayeeName: "BookBee", Currency: "INR"})
	checkout := checkoutsvc.New(db.DB, cr, br, or, pay, cache.Noop(), events.Noop(), log)
	rep := reputationsvc.New(or, br, ur, rr, creditrepo.New(db.DB), cache.Noop(), events.Noop(),
		reputationsvc.Options{CreditOnePerPair: true}, log)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	novel, err := books.Create(ctx, alice, model.NewBook{
		Title:           "The Guide",
		Price:           decimal.RequireFromString("120.00"),
		SecurityDeposit: decimal.RequireFromString("50"),
		Location:        "MG Road, Bengaluru 560001",
		Genre:           "fiction",
		TransactionType: model.TransactionBuy,
	})
	require.NoError(t, err)
	require.Equal(t, "560001", novel.Pincode)

	textbook, err := books.Create(ctx, alice, model.NewBook{
		Title:           "Linear Algebra",
		Price:           decimal.RequireFromString("30.5"),
		TransactionType: model.TransactionRent,
	})
	require.NoError(t, err)

	found, err := books.Search(ctx, model.BookFilter{Query: "guide", Mode: model.ModeHome})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, novel.ID, found[0].ID)

	// both bob and carol stage the buy listing; bob checks out first
	require.NoError(t, carts.Add(ctx, bob, novel.ID))
	require.NoError(t, carts.Add(ctx, bob, novel.ID))
	require.NoError(t, carts.Add(ctx, bob, textbook.ID))
	require.NoError(t, carts.Add(ctx, carol, novel.ID))
	require.Equal(t, apperr.ErrSelfTransaction, apperr.Code(carts.Add(ctx, alice, novel.ID)))

	view, err := carts.View(ctx, bob)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	require.True(t, decimal.RequireFromString("150.50").Equal(view.Total))

	rooms, err := chats.ListRooms(ctx, alice)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	res, err := checkout.Confirm(ctx, bob)
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)
	require.Empty(t, res.Skipped)

	sold, err := br.Get(ctx, novel.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookSold, sold.Status)
	require.Equal(t, bob, sold.OwnerID)

	lent, err := br.Get(ctx, textbook.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookLended, lent.Status)
	require.Equal(t, alice, lent.OwnerID)

	view, err = carts.View(ctx, bob)
	require.NoError(t, err)
	require.Empty(t, view.Items)

	res, err = checkout.Confirm(ctx, carol)
	require.NoError(t, err)
	require.Empty(t, res.Orders)
	require.Equal(t, []checkoutsvc.SkippedLine{{BookID: novel.ID, Reason: apperr.ErrAlreadyUnavailable}}, res.Skipped)

	hidden, err := books.Search(ctx, model.BookFilter{Mode: model.ModeHome})
	require.NoError(t, err)
	require.Empty(t, hidden)
	all, err := books.Search(ctx, model.BookFilter{Mode: model.ModeAll})
	require.NoError(t, err)
	require.Len(t, all, 2)

	rv, err := rep.SubmitReview(ctx, bob, novel.ID, 4, "clean copy")
	require.NoError(t, err)
	require.Equal(t, 4, rv.Rating)
	_, err = rep.SubmitReview(ctx, carol, novel.ID, 5, "")
	require.Equal(t, apperr.ErrNotEntitled, apperr.Code(err))

	_, err = rep.GiveCredit(ctx, bob, alice, "smooth handover")
	require.NoError(t, err)
	_, err = rep.GiveCredit(ctx, bob, alice, "again")
	require.Equal(t, apperr.ErrAlreadyCredited, apperr.Code(err))
	score, err := rep.TotalScore(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, int64(1), score)

	room, err := chats.GetOrCreateRoom(ctx, bob, alice)
	require.NoError(t, err)
	_, err = chats.PostMessage(ctx, room.ID, bob, "when can I pick it up?")
	require.NoError(t, err)
	unread, err := chats.UnreadCount(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)
	opened, err := chats.OpenRoom(ctx, room.ID, alice)
	require.NoError(t, err)
	require.Len(t, opened.Messages, 1)
	unread, err = chats.UnreadCount(ctx, alice)
	require.NoError(t, err)
	require.Zero(t, unread)
}

package checkoutsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/avnishka/BookBee/model"
	"github.com/avnishka/BookBee/repository/cache"
	"github.com/avnishka/BookBee/repository/events"
	cartsvc "github.com/avnishka/BookBee/service/cart"
	paymentsvc "github.com/avnishka/BookBee/service/payment"
	"github.com/avnishka/BookBee/util/apperr"
	"github.com/avnishka/BookBee/util/metrics"
)

var tracer = otel.Tracer("github.com/avnishka/BookBee/service/checkout")

type CartRepo interface {
	Items(ctx context.Context, userID int64) ([]model.Book, error)
	BookIDs(ctx context.Context, userID int64) ([]int64, error)
	Clear(ctx context.Context, userID int64, bookIDs []int64) error
}

type BookRepo interface {
	LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Book, error)
	SaveTransition(ctx context.Context, tx *sql.Tx, b *model.Book) error
}

type OrderRepo interface {
	Insert(ctx context.Context, tx *sql.Tx, o *model.Order) error
	ListForUser(ctx context.Context, userID int64) ([]model.Order, error)
}

type Preview struct {
	Items   []model.Book      `json:"items"`
	Total   decimal.Decimal   `json:"total"`
	Payment paymentsvc.Intent `json:"payment"`
}

// SkippedLine is a cart line that failed re-validation at confirm time.
type SkippedLine struct {
	BookID int64          `json:"book_id"`
	Reason apperr.ErrCode `json:"reason"`
}

type Result struct {
	Orders  []model.Order `json:"orders"`
	Skipped []SkippedLine `json:"skipped"`
}

type Service interface {
	Preview(ctx context.Context, userID int64) (*Preview, error)
	QR(ctx context.Context, userID int64) ([]byte, error)
	Confirm(ctx context.Context, userID int64) (*Result, error)
	History(ctx context.Context, userID int64) ([]model.Order, error)
}

type service struct {
	db     *sql.DB
	carts  CartRepo
	books  BookRepo
	orders OrderRepo
	pay    paymentsvc.Service
	cache  cache.BookCache
	pub    events.Publisher
	log    *slog.Logger
}

func New(db *sql.DB, carts CartRepo, books BookRepo, orders OrderRepo, pay paymentsvc.Service,
	c cache.BookCache, pub events.Publisher, log *slog.Logger) Service {
	return &service{db: db, carts: carts, books: books, orders: orders, pay: pay, cache: c, pub: pub, log: log}
}

func (s *service) Preview(ctx context.Context, userID int64) (*Preview, error) {
	items, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.New(apperr.ErrEmptyCart)
	}
	total := cartsvc.Total(items)
	return &Preview{
		Items:   items,
		Total:   total,
		Payment: s.pay.Intent(total),
	}, nil
}

func (s *service) QR(ctx context.Context, userID int64) ([]byte, error) {
	p, err := s.Preview(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.pay.QR(p.Payment.URI)
}

// Confirm drains the cart into orders. Each book is processed in its own
// transaction; a line that no longer validates is skipped, never retried.
// The lines read at the start are removed from the cart once every one has
// been looked at; books added meanwhile stay for the next checkout.
func (s *service) Confirm(ctx context.Context, userID int64) (*Result, error) {
	ctx, span := tracer.Start(ctx, "checkout.confirm")
	defer span.End()
	span.SetAttributes(attribute.Int64("buyer_id", userID))

	ids, err := s.carts.BookIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := &Result{Orders: []model.Order{}, Skipped: []SkippedLine{}}
	if len(ids) == 0 {
		return res, nil
	}

	for _, id := range ids {
		o, err := s.confirmLine(ctx, userID, id)
		if code := apperr.Code(err); code != "" {
			res.Skipped = append(res.Skipped, SkippedLine{BookID: id, Reason: code})
			metrics.RecordCheckoutLine(strings.ToLower(string(code)))
			s.log.Info("checkout line skipped", "buyer_id", userID, "book_id", id, "reason", code)
			continue
		}
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("checkout book %d: %w", id, err)
		}
		res.Orders = append(res.Orders, *o)
		metrics.RecordCheckoutLine("ordered")
		s.cache.Invalidate(ctx, id)
		if err := s.pub.Publish(ctx, events.New(events.TypeOrderPlaced, o)); err != nil {
			s.log.Warn("publish order.placed", "order_id", o.ID, "err", err)
		}
	}

	if err := s.carts.Clear(ctx, userID, ids); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("orders", len(res.Orders)), attribute.Int("skipped", len(res.Skipped)))
	s.log.Info("checkout confirmed", "buyer_id", userID, "orders", len(res.Orders), "skipped", len(res.Skipped))
	return res, nil
}

func (s *service) confirmLine(ctx context.Context, buyerID, bookID int64) (o *model.Order, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err := s.books.LockForUpdate(ctx, tx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound)
		}
		return nil, err
	}
	if b.Status != model.BookAvailable {
		return nil, apperr.New(apperr.ErrAlreadyUnavailable)
	}
	if b.OwnerID == buyerID {
		return nil, apperr.New(apperr.ErrSelfTransaction)
	}

	o = &model.Order{
		BuyerID:         buyerID,
		SellerID:        b.OwnerID,
		BookID:          b.ID,
		TransactionType: b.TransactionType,
		Price:           b.Price,
	}
	if err = s.orders.Insert(ctx, tx, o); err != nil {
		return nil, err
	}
	b.Transition(buyerID)
	if err = s.books.SaveTransition(ctx, tx, b); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) History(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.orders.ListForUser(ctx, userID)
}

package creditrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avnishka/BookBee/model"
)

// ErrDuplicate means the giver has already credited the receiver.
var ErrDuplicate = errors.New("credit already exists for pair")

type Repo interface {
	// Insert appends a credit. With onePerPair it fails with ErrDuplicate when
	// the (giver, receiver) pair already has one.
	Insert(ctx context.Context, c *model.UserCredit, onePerPair bool) error
	TotalScore(ctx context.Context, receiverID int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, c *model.UserCredit, onePerPair bool) error {
	const plain = `
		INSERT INTO user_credits (giver_id, receiver_id, score, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	// Two concurrent first credits can both pass NOT EXISTS; the window is one statement wide.
	const guarded = `
		INSERT INTO user_credits (giver_id, receiver_id, score, message)
		SELECT $1, $2, $3, $4
		WHERE NOT EXISTS (
			SELECT 1 FROM user_credits WHERE giver_id = $1 AND receiver_id = $2
		)
		RETURNING id, created_at`
	q := plain
	if onePerPair {
		q = guarded
	}
	err := r.db.QueryRowContext(ctx, q, c.GiverID, c.ReceiverID, c.Score, c.Message).Scan(&c.ID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert credit: %w", err)
	}
	return nil
}

func (r *repo) TotalScore(ctx context.Context, receiverID int64) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(score), 0) FROM user_credits WHERE receiver_id = $1`, receiverID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total score: %w", err)
	}
	return total, nil
}

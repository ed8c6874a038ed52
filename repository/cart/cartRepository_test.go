package cartrepo

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := New(db)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, book_id) DO NOTHING")).
		WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.Add(context.Background(), 1, 2))

	mock.ExpectExec("INSERT INTO cart_items").WithArgs(int64(1), int64(3)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	require.ErrorIs(t, r.Add(context.Background(), 1, 3), ErrBookGone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemsAndIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := New(db)

	cols := []string{"id", "owner_id", "title", "price", "security_deposit", "location", "pincode",
		"description", "genre", "transaction_type", "status", "created_at"}
	mock.ExpectQuery("FROM cart_items ci").WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows(cols).
		AddRow(2, 9, "Dune", "10.00", "0", "", "", "", "", "buy", "AVAILABLE", time.Now()).
		AddRow(3, 9, "Emma", "5.25", "0", "", "", "", "", "rent", "AVAILABLE", time.Now()))
	items, err := r.Items(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)

	mock.ExpectQuery("SELECT book_id FROM cart_items").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"book_id"}).AddRow(2).AddRow(3))
	ids, err := r.BookIDs(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 3}, ids)

	require.NoError(t, mock.ExpectationsWereMet())
}

// int64Slices lets sqlmock pass []int64 through as pgx does for array params.
type int64Slices struct{}

func (int64Slices) ConvertValue(v any) (driver.Value, error) {
	if ids, ok := v.([]int64); ok {
		return ids, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func TestClear_OnlyGivenBooks(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(int64Slices{}))
	require.NoError(t, err)
	defer db.Close()
	r := New(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE user_id = $1 AND book_id = ANY($2)")).
		WithArgs(int64(1), []int64{2, 3}).WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, r.Clear(context.Background(), 1, []int64{2, 3}))

	// nothing read, nothing deleted
	require.NoError(t, r.Clear(context.Background(), 1, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := New(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE user_id = $1 AND book_id = $2")).
		WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.Remove(context.Background(), 1, 2))

	// absent row is not an error
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE user_id = $1 AND book_id = $2")).
		WithArgs(int64(1), int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, r.Remove(context.Background(), 1, 9))

	mock.ExpectExec("DELETE FROM cart_items").WithArgs(int64(1), int64(4)).
		WillReturnError(errors.New("conn reset"))
	require.Error(t, r.Remove(context.Background(), 1, 4))
	require.NoError(t, mock.ExpectationsWereMet())
}

package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestPgErrorClassification(t *testing.T) {
	uniq := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	require.True(t, IsUniqueViolation(uniq))
	require.False(t, IsForeignKeyViolation(uniq))
	require.True(t, IsForeignKeyViolation(fk))
	require.False(t, IsUniqueViolation(errors.New("boom")))
	require.False(t, IsUniqueViolation(nil))
}

package chatrepo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/avnishka/BookBee/model"
)

var roomCols = []string{"id", "user1_id", "user2_id", "created_at"}

func TestGetOrCreate_NewRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("ON CONFLICT \\(user1_id, user2_id\\) DO NOTHING").WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow(5, 1, 2, time.Now()))
	room, err := New(db).GetOrCreate(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(5), room.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreate_ExistingRoomIsReused(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO chat_rooms").WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(roomCols))
	mock.ExpectQuery("SELECT id, user1_id, user2_id, created_at\\s+FROM chat_rooms").WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow(5, 1, 2, time.Now()))
	room, err := New(db).GetOrCreate(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(5), room.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreate_UnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO chat_rooms").WithArgs(int64(1), int64(99)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	_, err = New(db).GetOrCreate(context.Background(), 1, 99)
	require.ErrorIs(t, err, ErrUnknownUser)
}

func TestMessagesFlow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := New(db)
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO messages").WithArgs(int64(5), int64(1), "hi").
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_read", "created_at"}).AddRow(1, false, time.Now()))
	m := &model.Message{RoomID: 5, SenderID: 1, Text: "hi"}
	require.NoError(t, r.InsertMessage(ctx, m))
	require.False(t, m.IsRead)

	mock.ExpectExec("UPDATE messages").WithArgs(int64(5), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	n, err := r.MarkRead(ctx, 5, 2)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	mock.ExpectQuery("ORDER BY created_at, id").WithArgs(int64(5)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "room_id", "sender_id", "text", "created_at", "is_read"}).
			AddRow(1, 5, 1, "hi", time.Now(), true))
	msgs, err := r.Messages(ctx, 5)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.True(t, msgs[0].IsRead)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)\\s+FROM messages m").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	unread, err := r.UnreadCount(ctx, 2)
	require.NoError(t, err)
	require.Zero(t, unread)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM chat_rooms cr").WithArgs(int64(1)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "user1_id", "user2_id", "created_at", "id", "username", "unread"}).
			AddRow(5, 1, 2, time.Now(), 2, "ravi", 3))
	rooms, err := New(db).ListForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.Equal(t, "ravi", rooms[0].OtherName)
	require.Equal(t, int64(3), rooms[0].Unread)
}

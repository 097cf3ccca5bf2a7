package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gameforge/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newStoreWithMock(t *testing.T) (*Postgres, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgres(db), mock, db
}

func TestIncrementChatCount_AtomicUpdate(t *testing.T) {
	st, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+chat_count_today\s*=\s*chat_count_today\s*\+\s*1`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, st.IncrementChatCount(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementChatCount_MissingUser(t *testing.T) {
	st, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+chat_count_today`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := st.IncrementChatCount(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResetChatWindow(t *testing.T) {
	st, mock, db := newStoreWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec(`UPDATE\s+users\s+SET\s+chat_count_today\s*=\s*0,\s*last_chat_reset\s*=\s*\$1`).
		WithArgs(now, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, st.ResetChatWindow(context.Background(), "u1", now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkTransactionPaid_FirstApplication(t *testing.T) {
	st, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+payment_transactions\s+SET\s+status\s*=\s*\$1,\s*payment_status\s*=\s*\$2\s+WHERE\s+session_id\s*=\s*\$3\s+AND\s+payment_status\s*<>\s*\$2`).
		WithArgs(models.TxStatusCompleted, models.PaymentPaid, "cs_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := st.MarkTransactionPaid(context.Background(), "cs_1")
	require.NoError(t, err)
	require.True(t, applied)
}

func TestMarkTransactionPaid_AlreadyPaid(t *testing.T) {
	st, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+payment_transactions`).
		WithArgs(models.TxStatusCompleted, models.PaymentPaid, "cs_1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := st.MarkTransactionPaid(context.Background(), "cs_1")
	require.NoError(t, err)
	require.False(t, applied)
}

func TestProject_ScopedToOwner(t *testing.T) {
	st, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*name,\s*project_type,\s*user_id,\s*created_at,\s*updated_at\s+FROM\s+projects\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs("p1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := st.Project(context.Background(), "p1", "intruder")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecentMessages_ChronologicalOrder(t *testing.T) {
	st, mock, db := newStoreWithMock(t)
	defer db.Close()

	t0 := time.Now().UTC().Add(-2 * time.Minute)
	rows := sqlmock.NewRows([]string{"id", "project_id", "role", "content", "created_at"}).
		AddRow("m1", "p1", "user", "hi", t0).
		AddRow("m2", "p1", "assistant", "hello", t0.Add(time.Second))

	mock.ExpectQuery(`ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+\$2\s*\)\s*recent\s+ORDER\s+BY\s+created_at\s+ASC`).
		WithArgs("p1", 50).
		WillReturnRows(rows)

	msgs, err := st.RecentMessages(context.Background(), "p1", 50)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "hi", msgs[0].Content)
	require.Equal(t, "hello", msgs[1].Content)
}

func TestUserByEmail_NotFound(t *testing.T) {
	st, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := st.UserByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}

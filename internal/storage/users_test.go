package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*Users, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUsers(db), mock, db
}

func TestUpsertSeen_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+subscribed_users\s*\(user_id,\s*first_name,\s*last_name,\s*username,\s*language,\s*first_seen,\s*last_seen\).*ON\s+CONFLICT\s*\(user_id\)\s+DO\s+UPDATE.*last_seen\s*=\s*NOW\(\)$`

	mock.ExpectExec(q).
		WithArgs(int64(7), "Jane", "Doe", "janedoe", "es").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertSeen(context.Background(), SeenUser{
		UserID: 7, FirstName: "Jane", LastName: "Doe", Username: "janedoe", Language: "es",
	})
	if err != nil {
		t.Fatalf("UpsertSeen error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpsertSeen_EmptyFieldsBecomeNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+subscribed_users`).
		WithArgs(int64(7), nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpsertSeen(context.Background(), SeenUser{UserID: 7}); err != nil {
		t.Fatalf("UpsertSeen error: %v", err)
	}
}

func TestRecordValidation_CoalescesIdentifiers(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+subscribed_users\s*\(user_id,\s*nombre,\s*cedula,\s*correo,\s*credential_used,\s*last_seen\).*cedula\s*=\s*COALESCE\(EXCLUDED\.cedula,\s*subscribed_users\.cedula\).*correo\s*=\s*COALESCE\(EXCLUDED\.correo,\s*subscribed_users\.correo\)`

	mock.ExpectExec(q).
		WithArgs(int64(7), "Jane Doe", "12345678", nil, "12345678").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordValidation(context.Background(), 7, "Jane Doe", "12345678", "", "12345678")
	if err != nil {
		t.Fatalf("RecordValidation error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecordValidation_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+subscribed_users`).
		WillReturnError(errors.New("db down"))

	err := repo.RecordValidation(context.Background(), 7, "Jane Doe", "", "jane@x.com", "jane@x.com")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestBroadcastRecipients(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+user_id\s+FROM\s+subscribed_users\s+WHERE\s+nombre\s+IS\s+NOT\s+NULL$`

	rows := sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)).AddRow(int64(2))
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.BroadcastRecipients(context.Background())
	if err != nil {
		t.Fatalf("BroadcastRecipients error: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected recipients: %v", got)
	}
}

func TestBroadcastRecipients_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+user_id`).WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	got, err := repo.BroadcastRecipients(context.Background())
	if err != nil {
		t.Fatalf("BroadcastRecipients error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no recipients, got %v", got)
	}
}

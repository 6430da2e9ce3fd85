package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoReplaceSkillsSwapsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPGRepo(db)
	profileID := "11111111-1111-1111-1111-111111111111"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM profiles").
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(profileID))
	mock.ExpectExec("DELETE FROM skills").
		WithArgs(profileID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO skills").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO skills").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE profiles SET updated_at").
		WithArgs(profileID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	items := []Skill{
		{ID: "22222222-2222-2222-2222-222222222221", ProfileID: profileID, Name: "Go"},
		{ID: "22222222-2222-2222-2222-222222222222", ProfileID: profileID, Name: "Postgres"},
	}
	n, err := repo.ReplaceSkills(context.Background(), profileID, items)
	if err != nil {
		t.Fatalf("ReplaceSkills: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected count 2, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoReplaceEmptyListOnlyClears(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPGRepo(db)
	profileID := "11111111-1111-1111-1111-111111111111"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM profiles").
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(profileID))
	mock.ExpectExec("DELETE FROM languages").
		WithArgs(profileID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE profiles SET updated_at").
		WithArgs(profileID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.ReplaceLanguages(context.Background(), profileID, nil)
	if err != nil {
		t.Fatalf("ReplaceLanguages: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected count 0, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoReplaceUnknownProfileRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewPGRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM profiles").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err = repo.ReplaceSkills(context.Background(), "99999999-9999-9999-9999-999999999999", []Skill{{Name: "Go"}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

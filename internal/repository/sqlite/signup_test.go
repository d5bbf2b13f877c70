package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/learning-waitlist/internal/apperror"
	"github.com/sakif/learning-waitlist/internal/model"
)

// Using ":memory:" gives every test a fresh, isolated database that is
// destroyed when the connection closes — no files, no cleanup.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestSignup(t *testing.T, db *DB, email string) *model.Signup {
	t.Helper()
	signup := &model.Signup{
		Name:    "Ada",
		Email:   email,
		Subject: "machine learning",
	}
	if err := db.CreateSignup(context.Background(), signup); err != nil {
		t.Fatalf("failed to create test signup: %v", err)
	}
	return signup
}

func strPtr(s string) *string { return &s }

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreateSignup(t *testing.T) {
	db := newTestDB(t)

	signup := &model.Signup{
		Name:        "Ada",
		Email:       "ada@example.com",
		CountryCode: strPtr("+44"),
		Phone:       strPtr("7700 900123"),
		Subject:     "distributed systems",
		StayInLoop:  true,
	}

	if err := db.CreateSignup(context.Background(), signup); err != nil {
		t.Fatalf("CreateSignup() error = %v", err)
	}

	if signup.ID == "" {
		t.Error("CreateSignup() did not set signup.ID")
	}
	if signup.CreatedAt.IsZero() {
		t.Error("CreateSignup() did not set signup.CreatedAt")
	}

	count, err := db.CountSignups(context.Background())
	if err != nil {
		t.Fatalf("CountSignups() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountSignups() = %d, want 1", count)
	}
}

func TestCreateSignup_NullableFields(t *testing.T) {
	db := newTestDB(t)

	// No phone, no country code — both should insert as NULL without error.
	signup := &model.Signup{Name: "Ada", Email: "ada@example.com", Subject: "go"}
	if err := db.CreateSignup(context.Background(), signup); err != nil {
		t.Fatalf("CreateSignup() error = %v", err)
	}

	var phone, countryCode *string
	err := db.conn.QueryRow(
		`SELECT phone, country_code FROM signups WHERE id = ?`, signup.ID,
	).Scan(&phone, &countryCode)
	if err != nil {
		t.Fatalf("reading row back: %v", err)
	}
	if phone != nil || countryCode != nil {
		t.Errorf("phone = %v, country_code = %v, want NULLs", phone, countryCode)
	}
}

func TestCreateSignup_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	createTestSignup(t, db, "ada@example.com")

	dup := &model.Signup{Name: "Other Ada", Email: "ada@example.com", Subject: "maths"}
	err := db.CreateSignup(context.Background(), dup)
	if err == nil {
		t.Fatal("CreateSignup() should fail on duplicate email")
	}
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Errorf("error = %v, want ErrDuplicateEmail", err)
	}

	// Exactly one row must have won.
	count, _ := db.CountSignups(context.Background())
	if count != 1 {
		t.Errorf("CountSignups() = %d, want 1", count)
	}
}

func TestCreateSignup_MissingTable(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.conn.Exec(`DROP TABLE signup_challenges; DROP TABLE signups`); err != nil {
		t.Fatalf("dropping tables: %v", err)
	}

	signup := &model.Signup{Name: "Ada", Email: "ada@example.com", Subject: "go"}
	err := db.CreateSignup(context.Background(), signup)
	if !errors.Is(err, apperror.ErrStoreNotProvisioned) {
		t.Errorf("error = %v, want ErrStoreNotProvisioned", err)
	}
}

// =========================================================================
// SELECTION TESTS
// =========================================================================

func TestAddSelections_AndListBack(t *testing.T) {
	db := newTestDB(t)
	signup := createTestSignup(t, db, "ada@example.com")

	selections := []model.Selection{
		{SignupID: signup.ID, Challenge: "information_overload"},
		{SignupID: signup.ID, Challenge: "other", OtherDescription: strPtr("too many tabs")},
	}
	if err := db.AddSelections(context.Background(), signup.ID, selections); err != nil {
		t.Fatalf("AddSelections() error = %v", err)
	}

	got, err := db.ListSelections(context.Background())
	if err != nil {
		t.Fatalf("ListSelections() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListSelections() returned %d rows, want 2", len(got))
	}
	// Rows come back ordered by (signup_id, challenge).
	if got[0].Challenge != "information_overload" {
		t.Errorf("first challenge = %q", got[0].Challenge)
	}
	if got[1].OtherDescription == nil || *got[1].OtherDescription != "too many tabs" {
		t.Errorf("other description = %v, want %q", got[1].OtherDescription, "too many tabs")
	}
}

func TestAddSelections_Empty(t *testing.T) {
	db := newTestDB(t)
	signup := createTestSignup(t, db, "ada@example.com")

	if err := db.AddSelections(context.Background(), signup.ID, nil); err != nil {
		t.Errorf("AddSelections() with no rows should be a no-op, got %v", err)
	}
}

func TestAddSelections_FailureLeavesNoPartialRows(t *testing.T) {
	db := newTestDB(t)
	signup := createTestSignup(t, db, "ada@example.com")

	// The second row violates the composite primary key, so the whole batch
	// must roll back.
	selections := []model.Selection{
		{SignupID: signup.ID, Challenge: "information_overload"},
		{SignupID: signup.ID, Challenge: "information_overload"},
	}
	if err := db.AddSelections(context.Background(), signup.ID, selections); err == nil {
		t.Fatal("AddSelections() should fail on a duplicate (signup, challenge) pair")
	}

	got, err := db.ListSelections(context.Background())
	if err != nil {
		t.Fatalf("ListSelections() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("found %d selection rows after failed batch, want 0", len(got))
	}
}

func TestDeleteSignupCascadesSelections(t *testing.T) {
	db := newTestDB(t)
	signup := createTestSignup(t, db, "ada@example.com")

	sels := []model.Selection{{SignupID: signup.ID, Challenge: "limited_time_learning"}}
	if err := db.AddSelections(context.Background(), signup.ID, sels); err != nil {
		t.Fatalf("AddSelections() error = %v", err)
	}

	if _, err := db.conn.Exec(`DELETE FROM signups WHERE id = ?`, signup.ID); err != nil {
		t.Fatalf("deleting signup: %v", err)
	}

	got, _ := db.ListSelections(context.Background())
	if len(got) != 0 {
		t.Errorf("selections survived signup deletion: %d rows", len(got))
	}
}

// =========================================================================
// READ TESTS
// =========================================================================

func TestCountSignups_Empty(t *testing.T) {
	db := newTestDB(t)

	count, err := db.CountSignups(context.Background())
	if err != nil {
		t.Fatalf("CountSignups() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountSignups() = %d, want 0", count)
	}
}

func TestListSelections_MissingTable(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.conn.Exec(`DROP TABLE signup_challenges`); err != nil {
		t.Fatalf("dropping table: %v", err)
	}

	_, err := db.ListSelections(context.Background())
	if !errors.Is(err, apperror.ErrStoreNotProvisioned) {
		t.Errorf("error = %v, want ErrStoreNotProvisioned", err)
	}
}

package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/learning-waitlist/internal/apperror"
	"github.com/sakif/learning-waitlist/internal/model"
	"github.com/sakif/learning-waitlist/internal/repository"
)

// Compile-time check that *DB implements repository.SignupRepository.
var _ repository.SignupRepository = (*DB)(nil)

// CreateSignup inserts one signup row.
//
// ERROR CLASSIFICATION AT THE BOUNDARY:
// The services must never see raw driver errors, so this is where store
// failures become taxonomy errors:
//   - the UNIQUE constraint on email firing  → apperror.DuplicateEmail
//   - a missing table (schema not migrated)  → apperror.StoreNotProvisioned
//   - anything else is wrapped with context and classified generically
//     by the service layer.
//
// The driver reports constraint failures only through the error text, so we
// match on the stable substrings SQLite itself emits.
func (db *DB) CreateSignup(ctx context.Context, signup *model.Signup) error {
	signup.ID = xid.New().String()
	signup.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO signups (id, name, email, country_code, phone, subject, stay_in_loop, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		signup.ID,
		signup.Name,
		signup.Email,
		signup.CountryCode,
		signup.Phone,
		signup.Subject,
		signup.StayInLoop,
		signup.CreatedAt,
	)
	if err != nil {
		if isUniqueEmailViolation(err) {
			return apperror.DuplicateEmail()
		}
		if isMissingTable(err) {
			return apperror.StoreNotProvisioned(
				"signups table does not exist — run the server once with a writable DB_PATH to apply migrations")
		}
		return fmt.Errorf("sqlite: creating signup: %w", err)
	}

	return nil
}

// AddSelections inserts the challenge rows for one signup in a single
// transaction. The caller treats a failure here as non-fatal — the signup
// row is already committed — so the batch is all-or-nothing to avoid leaving
// a half-written selection set behind.
func (db *DB) AddSelections(ctx context.Context, signupID string, selections []model.Selection) error {
	if len(selections) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning selections tx: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	for _, sel := range selections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO signup_challenges (signup_id, challenge, other_description)
			 VALUES (?, ?, ?)`,
			signupID, sel.Challenge, sel.OtherDescription,
		); err != nil {
			if isMissingTable(err) {
				return apperror.StoreNotProvisioned(
					"signup_challenges table does not exist — run migrations")
			}
			return fmt.Errorf("sqlite: inserting selection %s/%s: %w", signupID, sel.Challenge, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing selections: %w", err)
	}

	return nil
}

// CountSignups returns the total number of persisted signups.
func (db *DB) CountSignups(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM signups`).Scan(&count)
	if err != nil {
		if isMissingTable(err) {
			return 0, apperror.StoreNotProvisioned("signups table does not exist — run migrations")
		}
		return 0, fmt.Errorf("sqlite: counting signups: %w", err)
	}
	return count, nil
}

// ListSelections returns every challenge selection row. The deterministic
// ORDER BY keeps repeated snapshot computations bit-identical when nothing
// was written in between.
func (db *DB) ListSelections(ctx context.Context) ([]model.Selection, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT signup_id, challenge, other_description
		 FROM signup_challenges
		 ORDER BY signup_id, challenge`,
	)
	if err != nil {
		if isMissingTable(err) {
			return nil, apperror.StoreNotProvisioned("signup_challenges table does not exist — run migrations")
		}
		return nil, fmt.Errorf("sqlite: listing selections: %w", err)
	}
	defer rows.Close()

	selections := make([]model.Selection, 0, 64)
	for rows.Next() {
		var sel model.Selection
		if err := rows.Scan(&sel.SignupID, &sel.Challenge, &sel.OtherDescription); err != nil {
			return nil, fmt.Errorf("sqlite: scanning selection row: %w", err)
		}
		selections = append(selections, sel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating selections: %w", err)
	}

	return selections, nil
}

func isUniqueEmailViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed: signups.email")
}

func isMissingTable(err error) bool {
	return strings.Contains(err.Error(), "no such table")
}

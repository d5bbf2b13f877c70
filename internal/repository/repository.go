package repository

import (
	"context"

	"github.com/sakif/learning-waitlist/internal/model"
)

// SignupRepository is the persistence capability the services depend on.
// The write side is two separate calls on purpose: CreateSignup is the
// durable, atomic insert; AddSelections is a secondary best-effort write
// whose failure the caller logs and swallows (a committed signup stays a
// success even when its challenge rows fail to land).
type SignupRepository interface {
	CreateSignup(ctx context.Context, signup *model.Signup) error
	AddSelections(ctx context.Context, signupID string, selections []model.Selection) error
	CountSignups(ctx context.Context) (int, error)
	ListSelections(ctx context.Context) ([]model.Selection, error)
}

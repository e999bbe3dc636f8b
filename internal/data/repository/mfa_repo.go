package repository

import (
	"context"
	"fmt"

	"bizportal/pkg/database"

	"go.uber.org/zap"
)

// MFARepository stores the single pending login code of a user. A new code
// overwrites the previous one; a consumed code is cleared.
type MFARepository interface {
	Issue(ctx context.Context, userID int64, code string) error
	// Consume clears the stored code only if it still equals code and
	// reports whether it did. Two concurrent consumers of one code cannot
	// both succeed.
	Consume(ctx context.Context, userID int64, code string) (bool, error)
}

type mfaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMFARepository(db database.PgxIface, log *zap.Logger) MFARepository {
	return &mfaRepository{
		db:  db,
		log: log.With(zap.String("repository", "mfa")),
	}
}

func (r *mfaRepository) Issue(ctx context.Context, userID int64, code string) error {
	query := `
		UPDATE users
		SET mfa_code = $2
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, userID, code)
	if err != nil {
		r.log.Error("Failed to store MFA code",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return fmt.Errorf("store MFA code for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *mfaRepository) Consume(ctx context.Context, userID int64, code string) (bool, error) {
	query := `
		UPDATE users
		SET mfa_code = NULL
		WHERE id = $1 AND mfa_code = $2
	`

	result, err := r.db.Exec(ctx, query, userID, code)
	if err != nil {
		r.log.Error("Failed to consume MFA code",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return false, fmt.Errorf("consume MFA code for user %d: %w", userID, err)
	}

	return result.RowsAffected() == 1, nil
}

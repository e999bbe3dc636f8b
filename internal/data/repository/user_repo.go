package repository

import (
	"context"
	"errors"
	"fmt"

	"bizportal/internal/data/entity"
	"bizportal/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	// CreateWithRoleQuota inserts the user unless the role quota is already
	// reached. The count and the insert run in one transaction holding a
	// per-role advisory lock.
	CreateWithRoleQuota(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, username, email, password_hash, phone, role, mfa_code, created_at`

func (ur *userRepository) CreateWithRoleQuota(ctx context.Context, user *entity.User) (err error) {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		ur.log.Error("Failed to begin user transaction", zap.Error(err))
		return fmt.Errorf("begin create user %s: %w", user.Username, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if quota := user.Role.Quota(); quota > 0 {
		if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, string(user.Role)); err != nil {
			ur.log.Error("Failed to lock role quota", zap.Error(err), zap.String("role", string(user.Role)))
			return fmt.Errorf("lock role %s: %w", user.Role, err)
		}

		var count int64
		if err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, string(user.Role)).Scan(&count); err != nil {
			ur.log.Error("Failed to count role", zap.Error(err), zap.String("role", string(user.Role)))
			return fmt.Errorf("count role %s: %w", user.Role, err)
		}
		if count >= int64(quota) {
			err = ErrRoleQuotaExceeded
			return err
		}
	}

	query := `
		INSERT INTO users (username, email, password_hash, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Phone,
		string(user.Role),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrDuplicate
			return err
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	if err = tx.Commit(ctx); err != nil {
		ur.log.Error("Failed to commit user", zap.Error(err), zap.String("username", user.Username))
		return fmt.Errorf("commit user %s: %w", user.Username, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID", zap.Error(err), zap.Int64("user_id", id))
		return nil, fmt.Errorf("find user by ID %d: %w", id, err)
	}

	return user, nil
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("find user by username %s: %w", username, err)
	}

	return user, nil
}

func (ur *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2 LIMIT 1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, username, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by username or email",
			zap.Error(err),
			zap.String("username", username),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by username %s or email %s: %w", username, email, err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		user entity.User
		role string
	)
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&role,
		&user.MFACode,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = entity.UserRole(role)
	return &user, nil
}

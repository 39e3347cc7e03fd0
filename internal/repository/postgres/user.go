package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skillpass/skillpass-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT id, wallet_address, email, password_hash, name, role, is_verified, created_at, updated_at
			  FROM users WHERE email = $1`

	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT id, wallet_address, email, password_hash, name, role, is_verified, created_at, updated_at
			  FROM users WHERE id = $1`

	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, wallet_address, email, password_hash, name, role, is_verified)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, wallet_address, email, password_hash, name, role, is_verified, created_at, updated_at`

	savedUser, err := r.scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.WalletAddress, user.Email, user.PasswordHash,
		user.Name, string(user.Role), user.IsVerified,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	var role string

	err := row.Scan(
		&user.ID, &user.WalletAddress, &user.Email, &user.PasswordHash,
		&user.Name, &role, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, err
	}

	user.Role, err = model.ParseUserRole(role)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", model.ErrCorruptRecord, err)
	}

	return user, nil
}

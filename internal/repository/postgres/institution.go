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

var _ model.InstitutionStore = (*InstitutionRepository)(nil)

type InstitutionRepository struct {
	db *Connection
}

func NewInstitutionRepository(db *Connection) *InstitutionRepository {
	return &InstitutionRepository{
		db: db,
	}
}

func (r *InstitutionRepository) Create(ctx context.Context, institution model.Institution) (model.Institution, error) {
	query := `INSERT INTO institutions (id, user_id, name, type, country, accreditation_number, is_accredited)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, user_id, name, type, country, accreditation_number, is_accredited, created_at`

	saved, err := r.scanInstitution(r.db.QueryRow(ctx, query,
		institution.ID, institution.UserID, institution.Name, institution.Type,
		institution.Country, institution.AccreditationNumber, institution.IsAccredited,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.Institution{}, model.ErrInstitutionExists
		}
		return model.Institution{}, fmt.Errorf("failed to create institution: %w", err)
	}

	return saved, nil
}

func (r *InstitutionRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Institution, error) {
	query := `SELECT id, user_id, name, type, country, accreditation_number, is_accredited, created_at
			  FROM institutions WHERE id = $1`

	return r.scanInstitution(r.db.QueryRow(ctx, query, id))
}

func (r *InstitutionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Institution, error) {
	query := `SELECT id, user_id, name, type, country, accreditation_number, is_accredited, created_at
			  FROM institutions WHERE user_id = $1`

	return r.scanInstitution(r.db.QueryRow(ctx, query, userID))
}

func (r *InstitutionRepository) UpdateAccreditation(ctx context.Context, id uuid.UUID, accredited bool) error {
	const query = `UPDATE institutions SET is_accredited = $1 WHERE id = $2`

	cmd, err := r.db.Exec(ctx, query, accredited, id)
	if err != nil {
		return fmt.Errorf("failed to update accreditation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *InstitutionRepository) scanInstitution(row pgx.Row) (model.Institution, error) {
	var institution model.Institution

	err := row.Scan(
		&institution.ID, &institution.UserID, &institution.Name, &institution.Type,
		&institution.Country, &institution.AccreditationNumber, &institution.IsAccredited,
		&institution.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Institution{}, model.ErrNotFound
		}
		return model.Institution{}, err
	}

	return institution, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skillpass/skillpass-server/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

const credentialColumns = `id, public_id, holder_id, issuer_id, type, title, description,
		content_ref, anchor_ref, proof_artifact, issue_date, expiry_date, status, metadata, created_at`

type CredentialRepository struct {
	db *Connection
}

func NewCredentialRepository(db *Connection) *CredentialRepository {
	return &CredentialRepository{
		db: db,
	}
}

func (r *CredentialRepository) Create(ctx context.Context, credential model.Credential) (model.Credential, error) {
	query := `INSERT INTO credentials (id, public_id, holder_id, issuer_id, type, title, description,
			  content_ref, anchor_ref, proof_artifact, issue_date, expiry_date, status, metadata)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			  RETURNING ` + credentialColumns

	saved, err := r.scanCredential(r.db.QueryRow(ctx, query,
		credential.ID, credential.PublicID, credential.HolderID, credential.IssuerID,
		string(credential.Type), credential.Title, credential.Description,
		credential.ContentRef, credential.AnchorRef, credential.ProofArtifact,
		credential.IssueDate, credential.ExpiryDate, string(credential.Status), credential.Metadata,
	))
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to create credential: %w", err)
	}

	return saved, nil
}

func (r *CredentialRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE id = $1`

	return r.scanCredential(r.db.QueryRow(ctx, query, id))
}

func (r *CredentialRepository) GetByPublicID(ctx context.Context, publicID string) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE public_id = $1`

	return r.scanCredential(r.db.QueryRow(ctx, query, publicID))
}

func (r *CredentialRepository) GetByHolder(ctx context.Context, holderID uuid.UUID) ([]model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials
			  WHERE holder_id = $1 ORDER BY created_at DESC`

	return r.queryCredentials(ctx, query, holderID)
}

func (r *CredentialRepository) GetByIssuer(ctx context.Context, issuerID uuid.UUID) ([]model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials
			  WHERE issuer_id = $1 ORDER BY created_at DESC`

	return r.queryCredentials(ctx, query, issuerID)
}

func (r *CredentialRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.CredentialStatus) error {
	const query = `UPDATE credentials SET status = $1 WHERE id = $2`

	cmd, err := r.db.Exec(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update credential status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) queryCredentials(ctx context.Context, query string, arg any) ([]model.Credential, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credentials []model.Credential
	for rows.Next() {
		credential, err := r.scanCredential(rows)
		if err != nil {
			return nil, err
		}
		credentials = append(credentials, credential)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return credentials, nil
}

// scanCredential parses the stored type and status strings through the closed
// enums. An unrecognized value surfaces as an error on every read path,
// including lists.
func (r *CredentialRepository) scanCredential(row pgx.Row) (model.Credential, error) {
	var credential model.Credential
	var credentialType, status string

	err := row.Scan(
		&credential.ID, &credential.PublicID, &credential.HolderID, &credential.IssuerID,
		&credentialType, &credential.Title, &credential.Description,
		&credential.ContentRef, &credential.AnchorRef, &credential.ProofArtifact,
		&credential.IssueDate, &credential.ExpiryDate, &status, &credential.Metadata,
		&credential.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, err
	}

	credential.Type, err = model.ParseCredentialType(credentialType)
	if err != nil {
		return model.Credential{}, fmt.Errorf("%w: %w", model.ErrCorruptRecord, err)
	}
	credential.Status, err = model.ParseCredentialStatus(status)
	if err != nil {
		return model.Credential{}, fmt.Errorf("%w: %w", model.ErrCorruptRecord, err)
	}

	return credential, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.RegistrationRequestRepository = (*RegistrationRequestRepo)(nil)

const requestColumns = `id, boat_name, captain_name, phone, email, status, processed_by, processed_at, created_at`

// RegistrationRequestRepo solicitudes de registro sobre PostgreSQL.
type RegistrationRequestRepo struct {
	db Querier
}

// NewRegistrationRequestRepository construye el adaptador.
func NewRegistrationRequestRepository(db Querier) *RegistrationRequestRepo {
	return &RegistrationRequestRepo{db: db}
}

// Create persiste una solicitud. El índice parcial sobre pendientes impide duplicados por email.
func (r *RegistrationRequestRepo) Create(ctx context.Context, req *entity.RegistrationRequest) error {
	query := `INSERT INTO registration_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		req.ID, req.BoatName, req.CaptainName, req.Phone, req.Email, req.Status,
		nullable(req.ProcessedBy), req.ProcessedAt, req.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPendingRequest
		}
		return fmt.Errorf("insert registration request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud; nil si no existe.
func (r *RegistrationRequestRepo) GetByID(ctx context.Context, id string) (*entity.RegistrationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM registration_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get registration request: %w", err)
	}
	return req, nil
}

// FindPendingByEmail devuelve la solicitud pendiente con ese email, o nil.
func (r *RegistrationRequestRepo) FindPendingByEmail(ctx context.Context, email string) (*entity.RegistrationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM registration_requests
		WHERE lower(email) = lower($1) AND status = $2 LIMIT 1`
	req, err := scanRequest(r.db.QueryRow(ctx, query, email, entity.RequestPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find pending request: %w", err)
	}
	return req, nil
}

// List solicitudes más recientes primero; status vacío = todas.
func (r *RegistrationRequestRepo) List(ctx context.Context, status string) ([]*entity.RegistrationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM registration_requests
		WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list registration requests: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.RegistrationRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado solo si la solicitud sigue pendiente.
func (r *RegistrationRequestRepo) UpdateStatus(ctx context.Context, req *entity.RegistrationRequest) error {
	query := `
		UPDATE registration_requests SET status = $2, processed_by = $3, processed_at = $4
		WHERE id = $1 AND status = $5`
	tag, err := r.db.Exec(ctx, query,
		req.ID, req.Status, nullable(req.ProcessedBy), req.ProcessedAt, entity.RequestPending,
	)
	if err != nil {
		return fmt.Errorf("update registration request: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	cur, err := r.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if cur == nil {
		return domain.ErrNotFound
	}
	return domain.ErrRequestProcessed
}

// Count cuenta solicitudes; status vacío = todas.
func (r *RegistrationRequestRepo) Count(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM registration_requests WHERE ($1 = '' OR status = $1)`, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registration requests: %w", err)
	}
	return n, nil
}

func scanRequest(row pgx.Row) (*entity.RegistrationRequest, error) {
	var req entity.RegistrationRequest
	var processedBy *string
	if err := row.Scan(&req.ID, &req.BoatName, &req.CaptainName, &req.Phone, &req.Email, &req.Status,
		&processedBy, &req.ProcessedAt, &req.CreatedAt); err != nil {
		return nil, err
	}
	req.ProcessedBy = deref(processedBy)
	return &req, nil
}

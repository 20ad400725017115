package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.RegistrationRequestRepository = (*RegistrationRequestRepo)(nil)

// RegistrationRequestRepo implementación en memoria de RegistrationRequestRepository.
type RegistrationRequestRepo struct {
	s *Store
}

// Create persiste una nueva solicitud. Solo puede haber una pendiente por email.
func (r *RegistrationRequestRepo) Create(_ context.Context, req *entity.RegistrationRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.create(req)
}

func (r *RegistrationRequestRepo) create(req *entity.RegistrationRequest) error {
	for _, cur := range r.s.requests.rows {
		if cur.Status == entity.RequestPending && strings.EqualFold(cur.Email, req.Email) {
			return domain.ErrPendingRequest
		}
	}
	r.s.requests.put(req.ID, *req)
	return nil
}

// GetByID obtiene una solicitud; nil si no existe.
func (r *RegistrationRequestRepo) GetByID(_ context.Context, id string) (*entity.RegistrationRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	req, ok := r.s.requests.rows[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

// FindPendingByEmail devuelve la solicitud pendiente con ese email, o nil.
func (r *RegistrationRequestRepo) FindPendingByEmail(_ context.Context, email string) (*entity.RegistrationRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, req := range r.s.requests.rows {
		if req.Status == entity.RequestPending && strings.EqualFold(req.Email, email) {
			return &req, nil
		}
	}
	return nil, nil
}

// List más recientes primero; status vacío = todas.
func (r *RegistrationRequestRepo) List(_ context.Context, status string) ([]*entity.RegistrationRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.RegistrationRequest, 0)
	r.s.requests.newestFirst(func(req entity.RegistrationRequest) {
		if status == "" || req.Status == status {
			list = append(list, &req)
		}
	})
	return list, nil
}

// UpdateStatus cambia estado y datos de procesamiento solo si sigue pendiente.
func (r *RegistrationRequestRepo) UpdateStatus(_ context.Context, req *entity.RegistrationRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, err := r.updateStatus(req)
	return err
}

// updateStatus devuelve la fila previa para poder deshacer el cambio.
func (r *RegistrationRequestRepo) updateStatus(req *entity.RegistrationRequest) (entity.RegistrationRequest, error) {
	prev, ok := r.s.requests.rows[req.ID]
	if !ok {
		return prev, domain.ErrNotFound
	}
	if prev.Status != entity.RequestPending {
		return prev, domain.ErrRequestProcessed
	}
	cur := prev
	cur.Status = req.Status
	cur.ProcessedBy = req.ProcessedBy
	cur.ProcessedAt = req.ProcessedAt
	r.s.requests.put(cur.ID, cur)
	return prev, nil
}

// Count cuenta solicitudes; status vacío = todas.
func (r *RegistrationRequestRepo) Count(ctx context.Context, status string) (int, error) {
	list, err := r.List(ctx, status)
	return len(list), err
}

package memory

import (
	"context"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación en memoria de NotificationRepository.
type NotificationRepo struct {
	s *Store
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications.put(n.ID, *n)
	return nil
}

// ListByUser notificaciones del usuario, más recientes primero, hasta limit (0 = sin límite).
func (r *NotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Notification, 0)
	r.s.notifications.newestFirst(func(n entity.Notification) {
		if n.UserID != userID || (limit > 0 && len(list) >= limit) {
			return
		}
		list = append(list, &n)
	})
	return list, nil
}

// MarkRead marca como leída una notificación del usuario.
func (r *NotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications.rows[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotFound
	}
	n.Read = true
	r.s.notifications.put(id, n)
	return nil
}

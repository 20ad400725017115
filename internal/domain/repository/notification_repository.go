package repository

import (
	"context"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error)
	// MarkRead retorna domain.ErrNotFound si la notificación no existe o no es del usuario.
	MarkRead(ctx context.Context, id, userID string) error
}

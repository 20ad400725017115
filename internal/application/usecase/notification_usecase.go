package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
	"github.com/jhoicas/mardecortez-api/pkg/logger"
)

// NotificationListLimit cantidad máxima de notificaciones devueltas por usuario.
const NotificationListLimit = 100

// NotificationUseCase avisos para usuarios sobre órdenes y cotizaciones.
type NotificationUseCase struct {
	repo repository.NotificationRepository
	log  *logger.Logger
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository, log *logger.Logger) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, log: log}
}

// Notify crea un aviso para userID. Un fallo se registra pero no interrumpe la operación que lo originó.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID, message string) {
	if userID == "" {
		return
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo crear la notificación")
	}
}

// List devuelve las notificaciones más recientes del usuario.
func (uc *NotificationUseCase) List(ctx context.Context, userID string) ([]dto.NotificationResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID, NotificationListLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca una notificación propia como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.repo.MarkRead(ctx, id, userID)
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mardecortez-api/internal/application/auth"
	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
	"github.com/jhoicas/mardecortez-api/pkg/logger"
)

// RegistrationUseCase solicitudes públicas de alta y su aprobación por el admin.
type RegistrationUseCase struct {
	users    repository.UserRepository
	requests repository.RegistrationRequestRepository
	tx       RegistrationTxRunner
	log      *logger.Logger
}

// NewRegistrationUseCase construye el caso de uso.
func NewRegistrationUseCase(
	users repository.UserRepository,
	requests repository.RegistrationRequestRepository,
	tx RegistrationTxRunner,
	log *logger.Logger,
) *RegistrationUseCase {
	return &RegistrationUseCase{users: users, requests: requests, tx: tx, log: log}
}

// Create registra una solicitud pendiente. Rechaza emails que ya son usuarios o que ya tienen
// una solicitud pendiente.
func (uc *RegistrationUseCase) Create(ctx context.Context, in dto.CreateRegistrationRequest) (*dto.CreateRegistrationResponse, error) {
	req := &entity.RegistrationRequest{
		ID:          uuid.New().String(),
		BoatName:    strings.TrimSpace(in.BoatName),
		CaptainName: strings.TrimSpace(in.CaptainName),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Status:      entity.RequestPending,
		CreatedAt:   time.Now().UTC(),
	}
	if req.BoatName == "" || req.CaptainName == "" || req.Phone == "" {
		return nil, fmt.Errorf("%w: boat_name, captain_name y phone son requeridos", domain.ErrInvalidInput)
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	existing, err := uc.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	pending, err := uc.requests.FindPendingByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, domain.ErrPendingRequest
	}
	if err := uc.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	uc.log.Info().Str("request_id", req.ID).Str("boat", req.BoatName).Msg("solicitud de registro recibida")
	return &dto.CreateRegistrationResponse{
		ID:      req.ID,
		Message: "Solicitud enviada. Te contactaremos pronto.",
	}, nil
}

// List solicitudes, más recientes primero; status vacío = todas.
func (uc *RegistrationUseCase) List(ctx context.Context, status string) ([]dto.RegistrationRequestResponse, error) {
	switch status {
	case "", entity.RequestPending, entity.RequestApproved, entity.RequestRejected:
	default:
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	list, err := uc.requests.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RegistrationRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRegistrationResponse(r))
	}
	return out, nil
}

// Approve crea el usuario a partir de la solicitud y la marca aprobada, todo en una transacción.
// email, name y company vacíos toman el email, captain_name y boat_name de la solicitud.
func (uc *RegistrationUseCase) Approve(ctx context.Context, adminID, id string, in dto.ApproveRegistrationRequest) (*dto.ApproveRegistrationResponse, error) {
	req, err := uc.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.Status != entity.RequestPending {
		return nil, domain.ErrRequestProcessed
	}
	if in.Role == "" {
		return nil, fmt.Errorf("%w: role es requerido", domain.ErrInvalidInput)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password es requerido", domain.ErrInvalidInput)
	}
	user, err := auth.NewUser(
		firstNonEmpty(in.Email, req.Email),
		in.Password,
		firstNonEmpty(in.Name, req.CaptainName),
		in.Role,
		firstNonEmpty(in.Company, req.BoatName),
	)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = uc.tx.RunRegistration(ctx, func(users repository.UserRepository, requests repository.RegistrationRequestRepository) error {
		existing, err := users.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		req.Status = entity.RequestApproved
		req.ProcessedBy = adminID
		req.ProcessedAt = &now
		return requests.UpdateStatus(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("request_id", req.ID).Str("user_id", user.ID).Str("role", user.Role).Msg("solicitud de registro aprobada")
	return &dto.ApproveRegistrationResponse{
		Message: "Usuario creado exitosamente",
		UserID:  user.ID,
		User:    *auth.ToUserResponse(user),
	}, nil
}

// Reject marca la solicitud como rechazada. Es terminal.
func (uc *RegistrationUseCase) Reject(ctx context.Context, adminID, id string) error {
	req, err := uc.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if req.Status != entity.RequestPending {
		return domain.ErrRequestProcessed
	}
	now := time.Now().UTC()
	req.Status = entity.RequestRejected
	req.ProcessedBy = adminID
	req.ProcessedAt = &now
	if err := uc.requests.UpdateStatus(ctx, req); err != nil {
		return err
	}
	uc.log.Info().Str("request_id", req.ID).Msg("solicitud de registro rechazada")
	return nil
}

func toRegistrationResponse(r *entity.RegistrationRequest) dto.RegistrationRequestResponse {
	return dto.RegistrationRequestResponse{
		ID:          r.ID,
		BoatName:    r.BoatName,
		CaptainName: r.CaptainName,
		Phone:       r.Phone,
		Email:       r.Email,
		Status:      r.Status,
		ProcessedBy: r.ProcessedBy,
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

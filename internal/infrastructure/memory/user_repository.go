package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository. El email es único sin distinguir mayúsculas.
type UserRepo struct {
	s *Store
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.create(user)
}

func (r *UserRepo) create(user *entity.User) error {
	if r.emailTaken(user.Email, "") {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users.put(user.ID, *user)
	return nil
}

// GetByID obtiene un usuario por ID; nil si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByEmail obtiene un usuario por email; nil si no existe.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users.rows {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, err := r.update(user)
	return err
}

// update devuelve la fila previa para poder deshacer el cambio.
func (r *UserRepo) update(user *entity.User) (entity.User, error) {
	prev, ok := r.s.users.rows[user.ID]
	if !ok {
		return entity.User{}, domain.ErrUserNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return entity.User{}, domain.ErrEmailAlreadyExists
	}
	r.s.users.put(user.ID, *user)
	return prev, nil
}

// List devuelve usuarios, más recientes primero; role vacío = todos.
func (r *UserRepo) List(_ context.Context, role string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0)
	r.s.users.newestFirst(func(u entity.User) {
		if role == "" || u.Role == role {
			list = append(list, &u)
		}
	})
	return list, nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, err := r.delete(id)
	return err
}

func (r *UserRepo) delete(id string) (entity.User, error) {
	prev, ok := r.s.users.rows[id]
	if !ok || !r.s.users.remove(id) {
		return entity.User{}, domain.ErrUserNotFound
	}
	return prev, nil
}

// Count cuenta usuarios; role vacío = todos.
func (r *UserRepo) Count(ctx context.Context, role string) (int, error) {
	list, err := r.List(ctx, role)
	return len(list), err
}

func (r *UserRepo) emailTaken(email, exceptID string) bool {
	for id, u := range r.s.users.rows {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

package memory

import (
	"context"

	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

var _ usecase.RegistrationTxRunner = (*TxRunner)(nil)

// TxRunner emula una transacción: serializa los callbacks y, si fn falla,
// deshace solo las escrituras hechas dentro de fn.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunRegistration ejecuta fn con los repos de usuarios y solicitudes.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	users repository.UserRepository,
	requests repository.RegistrationRequestRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	log := &undoLog{}
	users := &txUserRepo{UserRepo: r.s.Users(), log: log}
	requests := &txRequestRepo{RegistrationRequestRepo: r.s.RegistrationRequests(), log: log}
	if err := fn(users, requests); err != nil {
		r.s.mu.Lock()
		log.rollback()
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// undoLog acumula las operaciones inversas; se aplican con s.mu tomado.
type undoLog struct {
	undo []func()
}

func (l *undoLog) add(fn func()) { l.undo = append(l.undo, fn) }

func (l *undoLog) rollback() {
	for i := len(l.undo) - 1; i >= 0; i-- {
		l.undo[i]()
	}
}

type txUserRepo struct {
	*UserRepo
	log *undoLog
}

func (r *txUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.create(user); err != nil {
		return err
	}
	id := user.ID
	r.log.add(func() { r.s.users.remove(id) })
	return nil
}

func (r *txUserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, err := r.update(user)
	if err != nil {
		return err
	}
	r.log.add(func() { r.s.users.put(prev.ID, prev) })
	return nil
}

func (r *txUserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, err := r.delete(id)
	if err != nil {
		return err
	}
	r.log.add(func() { r.s.users.put(prev.ID, prev) })
	return nil
}

type txRequestRepo struct {
	*RegistrationRequestRepo
	log *undoLog
}

func (r *txRequestRepo) Create(_ context.Context, req *entity.RegistrationRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.create(req); err != nil {
		return err
	}
	id := req.ID
	r.log.add(func() { r.s.requests.remove(id) })
	return nil
}

func (r *txRequestRepo) UpdateStatus(_ context.Context, req *entity.RegistrationRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, err := r.updateStatus(req)
	if err != nil {
		return err
	}
	r.log.add(func() { r.s.requests.put(prev.ID, prev) })
	return nil
}

// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory (demo local) y como fake en los tests.
package memory

import (
	"sync"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// table guarda filas por ID conservando el orden de inserción.
type table[T any] struct {
	rows map[string]T
	ids  []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.ids {
		if v == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	return true
}

// newestFirst recorre las filas de la más reciente a la más antigua.
func (t *table[T]) newestFirst(fn func(v T)) {
	for i := len(t.ids) - 1; i >= 0; i-- {
		fn(t.rows[t.ids[i]])
	}
}

// Store contiene todas las tablas. Un único RWMutex protege el conjunto.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users         *table[entity.User]
	requests      *table[entity.RegistrationRequest]
	categories    *table[entity.Category]
	products      *table[entity.Product]
	orders        *table[entity.Order]
	quotations    *table[entity.Quotation]
	notifications *table[entity.Notification]
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:         newTable[entity.User](),
		requests:      newTable[entity.RegistrationRequest](),
		categories:    newTable[entity.Category](),
		products:      newTable[entity.Product](),
		orders:        newTable[entity.Order](),
		quotations:    newTable[entity.Quotation](),
		notifications: newTable[entity.Notification](),
	}
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// RegistrationRequests devuelve el repositorio de solicitudes de registro.
func (s *Store) RegistrationRequests() *RegistrationRequestRepo {
	return &RegistrationRequestRepo{s: s}
}

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Orders devuelve el repositorio de órdenes.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// Quotations devuelve el repositorio de cotizaciones.
func (s *Store) Quotations() *QuotationRepo { return &QuotationRepo{s: s} }

// Notifications devuelve el repositorio de notificaciones.
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }

package client

import (
	"context"
	"net/http"
	"sync"
)

// Session usuario actual más su token. Se crea una vez al iniciar la aplicación y se
// inyecta donde haga falta saber quién está conectado.
type Session struct {
	client *Client
	mu     sync.RWMutex
	user   *User
}

// NewSession crea la sesión sobre el cliente (y su TokenStore).
func NewSession(c *Client) *Session {
	return &Session{client: c}
}

// Bootstrap valida el token guardado contra /auth/me. Si no hay token devuelve false;
// si la llamada falla limpia el token y devuelve false junto con el error.
func (s *Session) Bootstrap(ctx context.Context) (bool, error) {
	token, err := s.client.tokens.Load()
	if err != nil || token == "" {
		return false, err
	}
	var me User
	if err := s.client.doJSON(ctx, http.MethodGet, "/auth/me", nil, &me); err != nil {
		_ = s.client.tokens.Clear()
		s.setUser(nil)
		return false, err
	}
	s.setUser(&me)
	return true, nil
}

// Login autentica, guarda el token y deja el usuario en la sesión.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	var out LoginResult
	in := map[string]string{"email": email, "password": password}
	if err := s.client.doJSON(ctx, http.MethodPost, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	if err := s.client.tokens.Save(out.Token); err != nil {
		return nil, &APIError{Message: FallbackMessage, Err: err}
	}
	s.setUser(&out.User)
	return &out.User, nil
}

// Logout borra el token y el usuario.
func (s *Session) Logout() error {
	s.setUser(nil)
	return s.client.tokens.Clear()
}

// User usuario autenticado o nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// HasRole indica si hay sesión y el usuario tiene alguno de los roles.
func (s *Session) HasRole(roles ...string) bool {
	u := s.User()
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (s *Session) setUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

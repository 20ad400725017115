// Package client es el cliente Go de la API de Mar de Cortez: sesión con bearer token,
// llamadas tipadas por recurso y las validaciones que la interfaz aplica antes de enviar.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
)

// FallbackMessage se muestra cuando el servidor no envía un mensaje o no hubo respuesta.
const FallbackMessage = "Ocurrió un error. Intenta de nuevo."

// APIError única forma de error de las llamadas: rechazos del servidor y fallas de red
// llegan por el mismo camino. Status 0 indica que no hubo respuesta HTTP.
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsStatus indica si err es un *APIError con el status HTTP dado.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client habla con la API bajo baseURL (ej. http://localhost:8080/api).
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (timeouts, transporte de pruebas).
// Por defecto no hay timeout: el límite lo pone el ctx de cada llamada.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenStore define dónde vive el token; por defecto en memoria.
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.tokens = s }
}

// New crea el cliente.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens devuelve el store de la sesión.
func (c *Client) Tokens() TokenStore { return c.tokens }

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &APIError{Message: FallbackMessage, Err: err}
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &APIError{Message: FallbackMessage, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	token, err := c.tokens.Load()
	if err != nil {
		return nil, &APIError{Message: FallbackMessage, Err: err}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send ejecuta la petición y decodifica out; out []byte recibe el cuerpo crudo.
func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: FallbackMessage, Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: FallbackMessage, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: FallbackMessage}
		var e dto.ErrorResponse
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Code = e.Code
			if strings.TrimSpace(e.Message) != "" {
				apiErr.Message = e.Message
			}
		}
		return apiErr
	}
	switch dst := out.(type) {
	case nil:
		return nil
	case *[]byte:
		*dst = raw
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: FallbackMessage, Err: err}
	}
	return nil
}

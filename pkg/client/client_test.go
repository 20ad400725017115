package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/pkg/client"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSend_MensajeDelServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"code": "ORDER_ALREADY_CLAIMED", "message": "la orden ya fue tomada"})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.TakeOrder(context.Background(), "o1", client.TakeOrder{})

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "ORDER_ALREADY_CLAIMED", apiErr.Code)
	assert.Equal(t, "la orden ya fue tomada", apiErr.Message)
	assert.True(t, client.IsStatus(err, http.StatusConflict))
}

func TestSend_SinMensajeUsaFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).Categories(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, client.FallbackMessage, apiErr.Message)
}

func TestSend_ErrorDeRedTambienEsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := client.New(url).Categories(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, client.FallbackMessage, apiErr.Message)
	assert.NotNil(t, apiErr.Unwrap())
}

func TestSession_LoginGuardaTokenYLoEnvia(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, client.LoginResult{Token: "tok-1", User: client.User{ID: "u1", Role: client.RoleCliente}})
		case "/api/notifications":
			gotAuth = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, []client.Notification{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL + "/api")
	s := client.NewSession(c)
	u, err := s.Login(context.Background(), "a@b.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.True(t, s.HasRole(client.RoleCliente))
	assert.False(t, s.HasRole(client.RoleAdmin))

	_, err = c.Notifications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)

	require.NoError(t, s.Logout())
	tok, _ := c.Tokens().Load()
	assert.Empty(t, tok)
	assert.Nil(t, s.User())
}

func TestSession_BootstrapLimpiaTokenInvalido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "INVALID_TOKEN", "message": "token inválido o expirado"})
	}))
	defer srv.Close()

	store := client.NewMemoryTokenStore()
	require.NoError(t, store.Save("viejo"))
	s := client.NewSession(client.New(srv.URL, client.WithTokenStore(store)))

	ok, err := s.Bootstrap(context.Background())
	assert.False(t, ok)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
	tok, _ := store.Load()
	assert.Empty(t, tok)
}

func TestSession_BootstrapSinTokenNoLlamaAlServidor(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	ok, err := client.NewSession(client.New(srv.URL)).Bootstrap(context.Background())
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestSession_BootstrapRestauraUsuario(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.User{ID: "u9", Role: client.RoleProveedor})
	}))
	defer srv.Close()

	store := client.NewMemoryTokenStore()
	require.NoError(t, store.Save("vigente"))
	s := client.NewSession(client.New(srv.URL, client.WithTokenStore(store)))

	ok, err := s.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u9", s.User().ID)
}

func TestValidacionesLocalesNoEnvianPeticion(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusOK, map[string]string{})
	}))
	defer srv.Close()
	c := client.New(srv.URL)
	ctx := context.Background()

	err := c.DeleteOrder(ctx, client.Order{ID: "o1", Status: client.StatusCompleted})
	assert.ErrorIs(t, err, client.ErrDeleteNotCancelled)

	_, err = c.UpdateAdminStatus(ctx, "o1", client.AdminStatus{Status: client.StatusCancelled, CancellationReason: "  "})
	assert.ErrorIs(t, err, client.ErrReasonRequired)

	_, err = c.UpdateSupplierStatus(ctx, "o1", client.SupplierStatus{Status: client.StatusCancelled})
	assert.ErrorIs(t, err, client.ErrSupplierStatus)

	_, err = c.CreateOrder(ctx, client.NewOrder{})
	assert.ErrorIs(t, err, client.ErrEmptyDraft)

	_, err = c.ApproveRegistration(ctx, "r1", client.ApproveRegistration{Role: " ", Password: "secreta"})
	assert.ErrorIs(t, err, client.ErrRoleAndPasswordRequired)
	_, err = c.ApproveRegistration(ctx, "r1", client.ApproveRegistration{Role: "cliente"})
	assert.ErrorIs(t, err, client.ErrRoleAndPasswordRequired)

	assert.Zero(t, atomic.LoadInt32(&calls))

	require.NoError(t, c.DeleteOrder(ctx, client.Order{ID: "o1", Status: client.StatusCancelled}))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLoadCatalog_PeticionesConcurrentes(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		maxSeen  int
	)
	release := make(chan struct{})
	var arrived sync.WaitGroup
	arrived.Add(3)
	go func() {
		arrived.Wait()
		close(release)
	}()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		if inFlight > maxSeen {
			maxSeen = inFlight
		}
		mu.Unlock()
		arrived.Done()
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
		mu.Lock()
		inFlight--
		mu.Unlock()

		switch r.URL.Path {
		case "/products":
			writeJSON(w, http.StatusOK, []client.Product{{ID: "p1", Name: "Ancla"}})
		case "/suppliers":
			writeJSON(w, http.StatusOK, []client.Supplier{{ID: "s1"}})
		case "/categories":
			writeJSON(w, http.StatusOK, []client.Category{{Slug: "otros"}})
		}
	}))
	defer srv.Close()

	cat, err := client.New(srv.URL).LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Products, 1)
	assert.Len(t, cat.Suppliers, 1)
	assert.Len(t, cat.Categories, 1)
	assert.Equal(t, 3, maxSeen, "las tres peticiones deben estar en vuelo a la vez")
}

func TestLoadCatalog_PropagaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/suppliers" {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"code": "INTERNAL", "message": "error interno del servidor"})
			return
		}
		writeJSON(w, http.StatusOK, []interface{}{})
	}))
	defer srv.Close()

	cat, err := client.New(srv.URL).LoadCatalog(context.Background())
	assert.Nil(t, cat)
	assert.True(t, client.IsStatus(err, http.StatusInternalServerError))
}

func TestUploadQuotation_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		assert.Equal(t, "cot.pdf", hdr.Filename)
		assert.Equal(t, "1250.5", r.FormValue("amount"))
		writeJSON(w, http.StatusCreated, client.Quotation{ID: "q1", FileName: hdr.Filename})
	}))
	defer srv.Close()

	amount := decimal.RequireFromString("1250.50")
	q, err := client.New(srv.URL).UploadQuotation(context.Background(), "o1", "cot.pdf", []byte("%PDF-1.4"), &amount, "")
	require.NoError(t, err)
	assert.Equal(t, "q1", q.ID)
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdc", "token")
	store := client.NewFileTokenStore(path)

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, store.Save("abc"))
	tok, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "limpiar dos veces no falla")
	tok, _ = store.Load()
	assert.Empty(t, tok)
}

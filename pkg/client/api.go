package client

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mardecortez-api/internal/domain/order"
)

// Errores de validación local: se detectan antes de enviar la petición.
var (
	ErrDeleteNotCancelled = errors.New("solo se pueden eliminar órdenes canceladas")
	ErrReasonRequired     = errors.New("el motivo de cancelación es obligatorio")
	ErrSupplierStatus     = errors.New("estado no permitido para proveedores")
	// ErrRoleAndPasswordRequired al aprobar una solicitud sin rol o contraseña.
	ErrRoleAndPasswordRequired = errors.New("rol y contraseña son obligatorios")
)

// Register alta de cliente o proveedor.
func (c *Client) Register(ctx context.Context, email, password, name, role, company string) (*User, error) {
	in := map[string]string{"email": email, "password": password, "name": name, "role": role, "company": company}
	var out User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitRegistration envía la solicitud pública de una embarcación.
func (c *Client) SubmitRegistration(ctx context.Context, in RegistrationInput) error {
	return c.doJSON(ctx, http.MethodPost, "/registration-requests", in, nil)
}

// RegistrationRequests lista solicitudes (admin); status vacío = todas.
func (c *Client) RegistrationRequests(ctx context.Context, status string) ([]RegistrationRequest, error) {
	var out []RegistrationRequest
	err := c.doJSON(ctx, http.MethodGet, "/admin/registration-requests"+query("status", status), nil, &out)
	return out, err
}

// ApproveRegistration aprueba una solicitud; role y password son obligatorios.
func (c *Client) ApproveRegistration(ctx context.Context, id string, in ApproveRegistration) (*ApprovedRegistration, error) {
	if strings.TrimSpace(in.Role) == "" || in.Password == "" {
		return nil, ErrRoleAndPasswordRequired
	}
	var out ApprovedRegistration
	if err := c.doJSON(ctx, http.MethodPut, "/admin/registration-requests/"+url.PathEscape(id)+"/approve", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectRegistration rechaza una solicitud pendiente.
func (c *Client) RejectRegistration(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPut, "/admin/registration-requests/"+url.PathEscape(id)+"/reject", nil, nil)
}

// Categories lista categorías.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &out)
	return out, err
}

// CreateCategory crea una categoría (admin o proveedor).
func (c *Client) CreateCategory(ctx context.Context, name, slug, description string) (*Category, error) {
	var out Category
	in := map[string]string{"name": name, "slug": slug, "description": description}
	if err := c.doJSON(ctx, http.MethodPost, "/categories", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory elimina una categoría sin productos.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

// Products lista el catálogo con filtros del servidor.
func (c *Client) Products(ctx context.Context, q ProductQuery) ([]Product, error) {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.SupplierID != "" {
		v.Set("supplier_id", q.SupplierID)
	}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	path := "/products"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var out []Product
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// SaveProduct crea (id vacío) o actualiza un producto. admin usa las rutas /admin/products.
func (c *Client) SaveProduct(ctx context.Context, admin bool, id string, in ProductInput) (*Product, error) {
	base := "/products"
	if admin {
		base = "/admin/products"
	}
	method, path := http.MethodPost, base
	if id != "" {
		method, path = http.MethodPut, base+"/"+url.PathEscape(id)
	}
	var out Product
	if err := c.doJSON(ctx, method, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct elimina un producto.
func (c *Client) DeleteProduct(ctx context.Context, admin bool, id string) error {
	base := "/products/"
	if admin {
		base = "/admin/products/"
	}
	return c.doJSON(ctx, http.MethodDelete, base+url.PathEscape(id), nil, nil)
}

// Suppliers directorio de proveedores.
func (c *Client) Suppliers(ctx context.Context) ([]Supplier, error) {
	var out []Supplier
	err := c.doJSON(ctx, http.MethodGet, "/suppliers", nil, &out)
	return out, err
}

// CreateOrder envía la orden del compositor.
func (c *Client) CreateOrder(ctx context.Context, in NewOrder) (*Order, error) {
	if len(in.Products) == 0 {
		return nil, ErrEmptyDraft
	}
	var out Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders lista las órdenes visibles para el rol de la sesión.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	err := c.doJSON(ctx, http.MethodGet, "/orders", nil, &out)
	return out, err
}

// AvailableOrders órdenes sin proveedor (proveedor).
func (c *Client) AvailableOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	err := c.doJSON(ctx, http.MethodGet, "/orders/available", nil, &out)
	return out, err
}

// TakeOrder toma una orden. La exclusión entre proveedores la resuelve el servidor;
// quien pierde recibe un *APIError con status 409.
func (c *Client) TakeOrder(ctx context.Context, id string, in TakeOrder) (*Order, error) {
	if in.Status != "" {
		if err := order.ValidateSupplierStatus(in.Status); err != nil {
			return nil, ErrSupplierStatus
		}
	}
	var out Order
	if err := c.doJSON(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/take", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSupplierStatus cambia estado, responsable o precios de una orden tomada.
func (c *Client) UpdateSupplierStatus(ctx context.Context, id string, in SupplierStatus) (*Order, error) {
	if err := order.ValidateSupplierStatus(in.Status); err != nil {
		return nil, ErrSupplierStatus
	}
	var out Order
	if err := c.doJSON(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePrices revisa los precios por renglón de una orden tomada.
func (c *Client) UpdatePrices(ctx context.Context, id string, prices []LinePrice) (*Order, error) {
	var out Order
	in := map[string]interface{}{"prices": prices}
	if err := c.doJSON(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/prices", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAdminStatus cambia el estado como admin; cancelado exige motivo.
func (c *Client) UpdateAdminStatus(ctx context.Context, id string, in AdminStatus) (*Order, error) {
	if in.Status == StatusCancelled && strings.TrimSpace(in.CancellationReason) == "" {
		return nil, ErrReasonRequired
	}
	var out Order
	if err := c.doJSON(ctx, http.MethodPut, "/admin/orders/"+url.PathEscape(id)+"/status", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrder elimina una orden cancelada. Cualquier otro estado se rechaza sin llamar al servidor.
func (c *Client) DeleteOrder(ctx context.Context, o Order) error {
	if !order.CanDelete(o.Status) {
		return ErrDeleteNotCancelled
	}
	return c.doJSON(ctx, http.MethodDelete, "/admin/orders/"+url.PathEscape(o.ID), nil, nil)
}

// UploadQuotation adjunta un PDF a una orden tomada. amount es opcional.
func (c *Client) UploadQuotation(ctx context.Context, orderID, fileName string, data []byte, amount *decimal.Decimal, notes string) (*Quotation, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, &APIError{Message: FallbackMessage, Err: err}
	}
	if _, err := fw.Write(data); err != nil {
		return nil, &APIError{Message: FallbackMessage, Err: err}
	}
	if amount != nil {
		_ = mw.WriteField("amount", amount.String())
	}
	if notes != "" {
		_ = mw.WriteField("notes", notes)
	}
	if err := mw.Close(); err != nil {
		return nil, &APIError{Message: FallbackMessage, Err: err}
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/orders/"+url.PathEscape(orderID)+"/quotation", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out Quotation
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderPDF descarga la hoja de la orden.
func (c *Client) OrderPDF(ctx context.Context, id string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/orders/"+url.PathEscape(id)+"/pdf", nil)
	if err != nil {
		return nil, err
	}
	var out []byte
	err = c.send(req, &out)
	return out, err
}

// Notifications avisos del usuario.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	err := c.doJSON(ctx, http.MethodGet, "/notifications", nil, &out)
	return out, err
}

// MarkNotificationRead marca un aviso como leído.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

// Stats métricas del panel de administración.
func (c *Client) Stats(ctx context.Context) (*AdminStats, error) {
	var out AdminStats
	if err := c.doJSON(ctx, http.MethodGet, "/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func query(key, value string) string {
	if value == "" {
		return ""
	}
	return "?" + url.Values{key: {value}}.Encode()
}

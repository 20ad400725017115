package dto

import "github.com/shopspring/decimal"

// AdminStatsResponse tablero del administrador.
type AdminStatsResponse struct {
	TotalUsers      int             `json:"total_users"`
	TotalClients    int             `json:"total_clients"`
	TotalSuppliers  int             `json:"total_suppliers"`
	TotalOrders     int             `json:"total_orders"`
	TotalProducts   int             `json:"total_products"`
	PendingRequests int             `json:"pending_requests"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
}

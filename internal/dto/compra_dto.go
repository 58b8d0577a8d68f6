package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetalleCompraRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarCompraRequest struct {
	ClienteID string                 `json:"cliente_id" validate:"required,uuid"`
	Productos []DetalleCompraRequest `json:"productos"  validate:"required,min=1,dive"`
}

// ActualizarCompraRequest carries the partial fields accepted by PUT.
// CodCompra is immutable and deliberately absent.
type ActualizarCompraRequest struct {
	ClienteID   *string `json:"cliente_id"   validate:"omitempty,uuid"`
	FechaCompra *string `json:"fecha_compra" validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleCompraResponse struct {
	ProductoID  string `json:"producto_id"`
	Producto    string `json:"producto,omitempty"`
	Cantidad    int    `json:"cantidad"`
	NumeroLinea int    `json:"numero_linea"`
}

type CompraResponse struct {
	ID          string                  `json:"id"`
	CodCompra   string                  `json:"cod_compra"`
	ClienteID   string                  `json:"cliente_id"`
	FechaCompra string                  `json:"fecha_compra"`
	Detalles    []DetalleCompraResponse `json:"detalles"`
}

// RegistrarCompraResponse mirrors the historical creation payload:
// message + generated code + the persisted purchase.
type RegistrarCompraResponse struct {
	Message   string         `json:"message"`
	CodCompra string         `json:"cod_compra"`
	Details   CompraResponse `json:"details"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleFilter is bound from the query string of GET /compras/detalles and
// GET /compras/generar-pdf. Both filters are optional and independent.
type DetalleFilter struct {
	ProductName string `form:"productName"`
	ClientDni   string `form:"clientDni"`
}

// DetalleCompraRow is one denormalized (purchase, line) pair joined against
// client and product reference data. Not stored: produced per query.
//
// PrecioUnitario is the product's CURRENT catalog price, not the price at
// purchase time — two reports over the same history can differ if the catalog
// changed in between. Known limitation of the pricing model.
type DetalleCompraRow struct {
	CodCompra          string          `json:"cod_compra"`
	FechaCompra        time.Time       `json:"fecha_compra"`
	ClienteNombre      string          `json:"cliente_nombre"`
	ClienteApellidoPat string          `json:"cliente_apellido_pat"`
	ClienteDNI         string          `json:"cliente_dni"`
	ProductoNombre     string          `json:"producto_nombre"`
	PrecioUnitario     decimal.Decimal `json:"producto_precio"`
	Cantidad           int             `json:"cantidad"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

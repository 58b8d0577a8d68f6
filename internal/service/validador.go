package service

import (
	"fmt"

	"github.com/pericos457/botica/internal/apierror"
	"github.com/pericos457/botica/internal/dto"
)

// ValidarRegistroCompra checks a creation request's shape and numeric
// constraints before any storage is touched. Rules run in order and the first
// violation wins; line errors name the offending line (1-based). Performs no
// I/O — referential checks (client/product existence) belong to the storage
// constraints.
func ValidarRegistroCompra(req dto.RegistrarCompraRequest) error {
	if req.ClienteID == "" {
		return apierror.NewValidation("Datos incompletos: se requiere cliente_id")
	}
	if len(req.Productos) == 0 {
		return apierror.NewValidation("Datos incompletos: se requiere un array de productos con producto_id y cantidad")
	}
	for i, p := range req.Productos {
		if p.ProductoID == "" {
			return apierror.NewValidation(fmt.Sprintf("Producto inválido en la línea %d: se requiere producto_id", i+1))
		}
		if p.Cantidad <= 0 {
			return apierror.NewValidation(fmt.Sprintf("Producto inválido en la línea %d: se requiere cantidad positiva", i+1))
		}
	}
	return nil
}

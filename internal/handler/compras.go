package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pericos457/botica/internal/apierror"
	"github.com/pericos457/botica/internal/dto"
	"github.com/pericos457/botica/internal/report"
	"github.com/pericos457/botica/internal/service"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler {
	return &ComprasHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar compras
// @Description  Retorna todas las cabeceras de compra con sus líneas.
// @Tags         compras
// @Produce      json
// @Success      200 {array}  dto.CompraResponse
// @Failure      500 {object} apierror.APIError
// @Router       /compras [get]
func (h *ComprasHandler) Listar(c *gin.Context) {
	compras, err := h.svc.ListarCompras(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, compras)
}

// ObtenerPorCodigo godoc
// @Summary      Obtener compra por código
// @Tags         compras
// @Produce      json
// @Param        cod_compra path string true "Código generado de la compra"
// @Success      200 {object} dto.CompraResponse
// @Failure      404 {object} apierror.APIError
// @Router       /compras/{cod_compra} [get]
func (h *ComprasHandler) ObtenerPorCodigo(c *gin.Context) {
	compra, err := h.svc.ObtenerPorCodigo(c.Request.Context(), c.Param("cod_compra"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, compra)
}

// Registrar godoc
// @Summary      Registrar una compra
// @Description  Crea la cabecera y todas sus líneas en una única transacción atómica.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarCompraRequest true "Compra a registrar"
// @Success      201 {object} dto.RegistrarCompraResponse
// @Failure      400 {object} apierror.ValidationError
// @Failure      409 {object} apierror.APIError
// @Router       /compras [post]
func (h *ComprasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarCompra(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary      Actualizar compra
// @Description  Actualiza campos parciales de la cabecera; código y líneas son inmutables.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la compra"
// @Param        body body dto.ActualizarCompraRequest true "Campos a actualizar"
// @Success      200 {object} dto.CompraResponse
// @Failure      404 {object} apierror.APIError
// @Router       /compras/{id} [put]
func (h *ComprasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	compra, err := h.svc.ActualizarCompra(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, compra)
}

// Eliminar godoc
// @Summary      Eliminar compra
// @Description  Elimina la compra y sus líneas. Idempotente: eliminar un id ausente responde 204.
// @Tags         compras
// @Param        id path string true "UUID de la compra"
// @Success      204
// @Failure      500 {object} apierror.APIError
// @Router       /compras/{id} [delete]
func (h *ComprasHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarCompra(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarDetalles godoc
// @Summary      Listar detalle de compras
// @Description  Vista aplanada (una fila por línea) con filtros opcionales por producto y DNI.
// @Tags         compras
// @Produce      json
// @Param        productName query string false "Subcadena del nombre del producto (case-insensitive)"
// @Param        clientDni   query string false "DNI exacto del cliente"
// @Success      200 {array}  dto.DetalleCompraRow
// @Failure      500 {object} apierror.APIError
// @Router       /compras/detalles [get]
func (h *ComprasHandler) ListarDetalles(c *gin.Context) {
	var filter dto.DetalleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	rows, err := h.svc.ListarDetalles(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if rows == nil {
		rows = []dto.DetalleCompraRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// GenerarPDF godoc
// @Summary      Generar reporte PDF de compras
// @Description  Renderiza el detalle filtrado como PDF tabular paginado. 404 cuando no hay filas.
// @Tags         compras
// @Produce      application/pdf
// @Param        productName query string false "Subcadena del nombre del producto (case-insensitive)"
// @Param        clientDni   query string false "DNI exacto del cliente"
// @Success      200 {file}   binary
// @Failure      404 {object} apierror.APIError
// @Router       /compras/generar-pdf [get]
func (h *ComprasHandler) GenerarPDF(c *gin.Context) {
	var filter dto.DetalleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	rows, err := h.svc.ListarDetalles(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	// "No data" is a distinct condition, decided before any byte is written.
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, apierror.New("No hay compras para generar el reporte."))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reporte_compras.pdf"`)
	c.Header("Content-Type", "application/pdf")

	// After this point a failure can only truncate the stream: the status has
	// already been sent, so the error is logged, never re-mapped.
	if err := report.Render(c.Writer, rows, report.LayoutReporteCompras()); err != nil {
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Err(err).
			Msg("reporte PDF truncado")
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pericos457/botica/internal/apierror"
	"github.com/pericos457/botica/internal/dto"
	"github.com/pericos457/botica/internal/service"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar clientes
// @Description  Retorna todos los clientes, o el que coincide con el DNI del query (lista vacía si no existe).
// @Tags         clientes
// @Produce      json
// @Param        dni query string false "DNI exacto"
// @Success      200 {array}  dto.ClienteResponse
// @Failure      500 {object} apierror.APIError
// @Router       /clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	clientes, err := h.svc.ListarClientes(c.Request.Context(), c.Query("dni"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientes)
}

// ObtenerPorID godoc
// @Summary      Obtener cliente por ID
// @Tags         clientes
// @Produce      json
// @Param        id path string true "UUID del cliente"
// @Success      200 {object} dto.ClienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /clientes/{id} [get]
func (h *ClientesHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	cliente, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cliente)
}

// Crear godoc
// @Summary      Crear cliente
// @Description  Registra un cliente; con tipo DNI los nombres se completan desde RENIEC. DNI duplicado responde 409.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearClienteRequest true "Cliente a crear"
// @Success      201 {object} dto.ClienteResponse
// @Failure      400 {object} apierror.ValidationError
// @Failure      409 {object} apierror.APIError
// @Router       /clientes [post]
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cliente, err := h.svc.CrearCliente(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cliente)
}

// Actualizar godoc
// @Summary      Actualizar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID del cliente"
// @Param        body body dto.ActualizarClienteRequest true "Campos a actualizar"
// @Success      200 {object} dto.ClienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /clientes/{id} [put]
func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cliente, err := h.svc.ActualizarCliente(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cliente)
}

// Eliminar godoc
// @Summary      Eliminar cliente
// @Tags         clientes
// @Param        id path string true "UUID del cliente"
// @Success      204
// @Failure      500 {object} apierror.APIError
// @Router       /clientes/{id} [delete]
func (h *ClientesHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarCliente(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ConsultarReniec godoc
// @Summary      Consultar datos RENIEC por DNI
// @Description  Autocompleta nombre y apellidos para el formulario de clientes. Respuestas se cachean en Redis.
// @Tags         clientes
// @Produce      json
// @Param        dni path string true "DNI de 8 dígitos"
// @Success      200 {object} dto.ReniecResponse
// @Failure      404 {object} apierror.APIError
// @Router       /clientes/reniec/{dni} [get]
func (h *ClientesHandler) ConsultarReniec(c *gin.Context) {
	data, err := h.svc.ConsultarReniec(c.Request.Context(), c.Param("dni"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

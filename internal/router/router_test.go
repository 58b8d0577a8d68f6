package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pericos457/botica/internal/config"
	"github.com/pericos457/botica/internal/dto"
	"github.com/pericos457/botica/internal/infra"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// dniEnPadron is the only DNI the stubbed RENIEC lookup resolves; every other
// DNI gets the API's 404 and creation keeps the submitted names.
const dniEnPadron = "44556677"

func servidorDePrueba(t *testing.T) *gin.Engine {
	t.Helper()

	reniec := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("numero") != dniEnPadron {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"nombres":"Rosa","apellidoPaterno":"Flores","apellidoMaterno":"Díaz","numeroDocumento":"44556677"}`)
	}))
	t.Cleanup(reniec.Close)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	cfg := &config.Config{
		Env:            "test",
		ReniecAPIURL:   reniec.URL,
		FrontendOrigin: "http://localhost:3001",
	}
	return New(cfg, db, nil)
}

func hacer(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodificar(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), "cuerpo: %s", rec.Body.String())
}

func crearCliente(t *testing.T, r *gin.Engine, dni, nombre, apellido string) dto.ClienteResponse {
	t.Helper()
	rec := hacer(t, r, http.MethodPost, "/clientes", gin.H{
		"dni": dni, "nombre": nombre, "apellido_pat": apellido,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "cuerpo: %s", rec.Body.String())
	var c dto.ClienteResponse
	decodificar(t, rec, &c)
	return c
}

func crearProducto(t *testing.T, r *gin.Engine, nombre, precio string) dto.ProductoResponse {
	t.Helper()
	rec := hacer(t, r, http.MethodPost, "/productos", gin.H{"nombre": nombre, "precio": precio})
	require.Equal(t, http.StatusCreated, rec.Code, "cuerpo: %s", rec.Body.String())
	var p dto.ProductoResponse
	decodificar(t, rec, &p)
	return p
}

func TestRegistrarCompra_FlujoCompleto(t *testing.T) {
	r := servidorDePrueba(t)
	cliente := crearCliente(t, r, "12345678", "María", "Quispe")
	p1 := crearProducto(t, r, "Paracetamol 500mg", "2.50")
	p2 := crearProducto(t, r, "Amoxicilina 250mg", "12.00")

	rec := hacer(t, r, http.MethodPost, "/compras", gin.H{
		"cliente_id": cliente.ID,
		"productos": []gin.H{
			{"producto_id": p1.ID, "cantidad": 3},
			{"producto_id": p2.ID, "cantidad": 1},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, "cuerpo: %s", rec.Body.String())

	var resp dto.RegistrarCompraResponse
	decodificar(t, rec, &resp)
	assert.Equal(t, "Compra registrada con éxito", resp.Message)
	assert.Regexp(t, `^C-\d{13}-[0-9a-z]{5}$`, resp.CodCompra)
	require.Len(t, resp.Details.Detalles, 2)
	assert.Equal(t, 1, resp.Details.Detalles[0].NumeroLinea)
	assert.Equal(t, 2, resp.Details.Detalles[1].NumeroLinea)

	// La compra es recuperable por su código con todas sus líneas
	rec = hacer(t, r, http.MethodGet, "/compras/"+resp.CodCompra, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var compra dto.CompraResponse
	decodificar(t, rec, &compra)
	assert.Equal(t, cliente.ID, compra.ClienteID)
	assert.Len(t, compra.Detalles, 2)

	// La vista de detalles aplana una fila por línea con el subtotal calculado
	rec = hacer(t, r, http.MethodGet, "/compras/detalles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var filas []dto.DetalleCompraRow
	decodificar(t, rec, &filas)
	require.Len(t, filas, 2)
	assert.Equal(t, "7.5", filas[0].Subtotal.String())
	assert.Equal(t, "12", filas[1].Subtotal.String())
}

func TestRegistrarCompra_SinLineasNoPersisteNada(t *testing.T) {
	r := servidorDePrueba(t)
	cliente := crearCliente(t, r, "12345678", "María", "Quispe")

	rec := hacer(t, r, http.MethodPost, "/compras", gin.H{
		"cliente_id": cliente.ID,
		"productos":  []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = hacer(t, r, http.MethodGet, "/compras", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var compras []dto.CompraResponse
	decodificar(t, rec, &compras)
	assert.Empty(t, compras)
}

func TestDetalles_FiltroSinCoincidenciasEsArregloVacio(t *testing.T) {
	r := servidorDePrueba(t)
	cliente := crearCliente(t, r, "12345678", "María", "Quispe")
	p := crearProducto(t, r, "Paracetamol 500mg", "2.50")
	rec := hacer(t, r, http.MethodPost, "/compras", gin.H{
		"cliente_id": cliente.ID,
		"productos":  []gin.H{{"producto_id": p.ID, "cantidad": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = hacer(t, r, http.MethodGet, "/compras/detalles?clientDni=99999999", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGenerarPDF(t *testing.T) {
	r := servidorDePrueba(t)

	t.Run("sin datos responde 404 sin adjunto", func(t *testing.T) {
		rec := hacer(t, r, http.MethodGet, "/compras/generar-pdf", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
		var e map[string]string
		decodificar(t, rec, &e)
		assert.Equal(t, "No hay compras para generar el reporte.", e["detail"])
	})

	cliente := crearCliente(t, r, "12345678", "María", "Quispe")
	p := crearProducto(t, r, "Paracetamol 500mg", "2.50")
	rec := hacer(t, r, http.MethodPost, "/compras", gin.H{
		"cliente_id": cliente.ID,
		"productos":  []gin.H{{"producto_id": p.ID, "cantidad": 2}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("con datos emite el adjunto PDF", func(t *testing.T) {
		rec := hacer(t, r, http.MethodGet, "/compras/generar-pdf", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="reporte_compras.pdf"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
	})

	t.Run("el filtro sin coincidencias también es 404", func(t *testing.T) {
		rec := hacer(t, r, http.MethodGet, "/compras/generar-pdf?productName=inexistente", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCrearCliente(t *testing.T) {
	r := servidorDePrueba(t)

	t.Run("DNI duplicado responde 409", func(t *testing.T) {
		crearCliente(t, r, "12345678", "María", "Quispe")
		rec := hacer(t, r, http.MethodPost, "/clientes", gin.H{
			"dni": "12345678", "nombre": "Otra", "apellido_pat": "Persona",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("DNI mal formado responde 400", func(t *testing.T) {
		rec := hacer(t, r, http.MethodPost, "/clientes", gin.H{"dni": "123"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("los nombres se enriquecen desde RENIEC cuando el DNI está en el padrón", func(t *testing.T) {
		c := crearCliente(t, r, dniEnPadron, "Nombre Enviado", "Apellido Enviado")
		assert.Equal(t, "Rosa", c.Nombre)
		assert.Equal(t, "Flores", c.ApellidoPat)
		assert.Equal(t, "Díaz", c.ApellidoMat)
	})
}

func TestConsultarReniec(t *testing.T) {
	r := servidorDePrueba(t)

	rec := hacer(t, r, http.MethodGet, "/clientes/reniec/"+dniEnPadron, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ReniecResponse
	decodificar(t, rec, &resp)
	assert.Equal(t, "Rosa", resp.Nombre)

	rec = hacer(t, r, http.MethodGet, "/clientes/reniec/99999999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEliminarCompra_EsIdempotente(t *testing.T) {
	r := servidorDePrueba(t)
	cliente := crearCliente(t, r, "12345678", "María", "Quispe")
	p := crearProducto(t, r, "Paracetamol 500mg", "2.50")
	rec := hacer(t, r, http.MethodPost, "/compras", gin.H{
		"cliente_id": cliente.ID,
		"productos":  []gin.H{{"producto_id": p.ID, "cantidad": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.RegistrarCompraResponse
	decodificar(t, rec, &resp)

	rec = hacer(t, r, http.MethodGet, "/compras/"+resp.CodCompra, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var compra dto.CompraResponse
	decodificar(t, rec, &compra)

	rec = hacer(t, r, http.MethodDelete, "/compras/"+compra.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = hacer(t, r, http.MethodDelete, "/compras/"+compra.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = hacer(t, r, http.MethodGet, "/compras/"+resp.CodCompra, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	r := servidorDePrueba(t)
	rec := hacer(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"connected"`)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

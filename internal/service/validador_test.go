package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pericos457/botica/internal/apierror"
	"github.com/pericos457/botica/internal/dto"
)

func TestValidarRegistroCompra_Valida(t *testing.T) {
	req := dto.RegistrarCompraRequest{
		ClienteID: "7e4f5a45-9d8d-4a3a-8f70-d82f0a4c2a11",
		Productos: []dto.DetalleCompraRequest{
			{ProductoID: "b1a2c3d4-0000-4000-8000-000000000001", Cantidad: 2},
			{ProductoID: "b1a2c3d4-0000-4000-8000-000000000002", Cantidad: 1},
		},
	}
	require.NoError(t, ValidarRegistroCompra(req))
}

func TestValidarRegistroCompra_PrimeraViolacionGana(t *testing.T) {
	cases := []struct {
		nombre  string
		req     dto.RegistrarCompraRequest
		mensaje string
	}{
		{
			nombre:  "sin cliente",
			req:     dto.RegistrarCompraRequest{Productos: []dto.DetalleCompraRequest{{ProductoID: "x", Cantidad: 1}}},
			mensaje: "cliente_id",
		},
		{
			nombre:  "sin lineas",
			req:     dto.RegistrarCompraRequest{ClienteID: "c1"},
			mensaje: "array de productos",
		},
		{
			nombre: "linea sin producto",
			req: dto.RegistrarCompraRequest{
				ClienteID: "c1",
				Productos: []dto.DetalleCompraRequest{{ProductoID: "p1", Cantidad: 1}, {Cantidad: 3}},
			},
			mensaje: "línea 2",
		},
		{
			nombre: "cantidad cero",
			req: dto.RegistrarCompraRequest{
				ClienteID: "c1",
				Productos: []dto.DetalleCompraRequest{{ProductoID: "p1", Cantidad: 0}},
			},
			mensaje: "línea 1",
		},
		{
			nombre: "cantidad negativa",
			req: dto.RegistrarCompraRequest{
				ClienteID: "c1",
				Productos: []dto.DetalleCompraRequest{{ProductoID: "p1", Cantidad: -2}},
			},
			mensaje: "línea 1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			err := ValidarRegistroCompra(tc.req)
			require.Error(t, err)
			var vErr *apierror.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Detail, tc.mensaje)
		})
	}
}

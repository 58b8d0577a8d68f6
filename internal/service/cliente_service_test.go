package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pericos457/botica/internal/apierror"
	"github.com/pericos457/botica/internal/dto"
	"github.com/pericos457/botica/internal/model"
	"github.com/pericos457/botica/internal/repository"
)

type stubClienteRepo struct {
	porDNI map[string]*model.Cliente
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{porDNI: make(map[string]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if _, ok := r.porDNI[c.DNI]; ok {
		return apierror.NewConflict("dni")
	}
	c.ID = uuid.New()
	r.porDNI[c.DNI] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	for _, c := range r.porDNI {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apierror.NewNotFound("cliente")
}

func (r *stubClienteRepo) FindByDNI(_ context.Context, dni string) (*model.Cliente, error) {
	c, ok := r.porDNI[dni]
	if !ok {
		return nil, apierror.NewNotFound("cliente")
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.porDNI))
	for _, c := range r.porDNI {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error { return nil }
func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error     { return nil }

func nuevoClienteServiceDePrueba(repo repository.ClienteRepository) ClienteService {
	// sin RENIEC ni Redis: creación conserva los datos enviados
	return NewClienteService(repo, nil, nil, zerolog.Nop())
}

func TestCrearCliente_ValidaDNI(t *testing.T) {
	svc := nuevoClienteServiceDePrueba(newStubClienteRepo())

	for _, dni := range []string{"", "123", "123456789", "1234567a"} {
		_, err := svc.CrearCliente(context.Background(), dto.CrearClienteRequest{DNI: dni, Nombre: "Ana"})
		var vErr *apierror.ValidationError
		assert.ErrorAs(t, err, &vErr, "dni=%q", dni)
	}
}

func TestCrearCliente_SinReniecConservaLosDatosEnviados(t *testing.T) {
	svc := nuevoClienteServiceDePrueba(newStubClienteRepo())

	tel := "  999888777  "
	resp, err := svc.CrearCliente(context.Background(), dto.CrearClienteRequest{
		DNI:         "12345678",
		Nombre:      "Ana",
		ApellidoPat: "Torres",
		Telefono:    &tel,
	})
	require.NoError(t, err)
	assert.Equal(t, "DNI", resp.TipoDocumento)
	assert.Equal(t, "Ana", resp.Nombre)
	require.NotNil(t, resp.Telefono)
	assert.Equal(t, "999888777", *resp.Telefono, "el teléfono se guarda sin espacios")
}

func TestCrearCliente_DNIDuplicadoEsConflicto(t *testing.T) {
	repo := newStubClienteRepo()
	svc := nuevoClienteServiceDePrueba(repo)

	_, err := svc.CrearCliente(context.Background(), dto.CrearClienteRequest{DNI: "12345678", Nombre: "Ana"})
	require.NoError(t, err)

	_, err = svc.CrearCliente(context.Background(), dto.CrearClienteRequest{DNI: "12345678", Nombre: "Otra"})
	var conflict *apierror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "dni", conflict.Campo)
}

func TestListarClientes_DNISinCoincidenciaEsListaVacia(t *testing.T) {
	svc := nuevoClienteServiceDePrueba(newStubClienteRepo())

	clientes, err := svc.ListarClientes(context.Background(), "99999999")
	require.NoError(t, err)
	assert.NotNil(t, clientes)
	assert.Empty(t, clientes)
}

func TestConsultarReniec_DNIMalFormado(t *testing.T) {
	svc := nuevoClienteServiceDePrueba(newStubClienteRepo())

	_, err := svc.ConsultarReniec(context.Background(), "12-34")
	var vErr *apierror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

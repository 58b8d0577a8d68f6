package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pericos457/botica/internal/apierror"
	"github.com/pericos457/botica/internal/dto"
	"github.com/pericos457/botica/internal/infra"
	"github.com/pericos457/botica/internal/model"
	"github.com/pericos457/botica/internal/repository"
)

var dniPattern = regexp.MustCompile(`^\d{8}$`)

// reniecCacheTTL — padron entries are effectively static, one day is plenty.
const reniecCacheTTL = 24 * time.Hour

type ClienteService interface {
	CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	ListarClientes(ctx context.Context, dni string) ([]dto.ClienteResponse, error)
	ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	EliminarCliente(ctx context.Context, id uuid.UUID) error
	ConsultarReniec(ctx context.Context, dni string) (*dto.ReniecResponse, error)
}

type clienteService struct {
	repo   repository.ClienteRepository
	reniec *infra.ReniecClient
	rdb    *redis.Client
	log    zerolog.Logger
}

// NewClienteService builds the client CRUD service. reniec and rdb may be nil
// (unit tests, degraded mode): creation then keeps the submitted names.
func NewClienteService(repo repository.ClienteRepository, reniec *infra.ReniecClient, rdb *redis.Client, log zerolog.Logger) ClienteService {
	return &clienteService{repo: repo, reniec: reniec, rdb: rdb, log: log}
}

// CrearCliente registers a client. For TipoDocumento DNI the names are
// enriched from the RENIEC lookup when available; lookup failures are logged
// and creation proceeds with the submitted names. A duplicate DNI surfaces as
// apierror.ConflictError.
func (s *clienteService) CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	tipoDoc := req.TipoDocumento
	if tipoDoc == "" {
		tipoDoc = "DNI"
	}
	if tipoDoc == "DNI" && !dniPattern.MatchString(req.DNI) {
		return nil, apierror.NewValidation("El DNI es requerido y debe tener 8 dígitos")
	}

	nombre, apellidoPat, apellidoMat := req.Nombre, req.ApellidoPat, req.ApellidoMat
	if tipoDoc == "DNI" {
		if data, err := s.consultarReniecCached(ctx, req.DNI); err != nil {
			s.log.Warn().Str("dni", req.DNI).Err(err).Msg("consulta RENIEC falló, se usan los datos enviados")
		} else if data != nil {
			nombre, apellidoPat, apellidoMat = data.Nombres, data.ApellidoPaterno, data.ApellidoMaterno
		}
	}

	cliente := model.Cliente{
		DNI:           strings.TrimSpace(req.DNI),
		TipoDocumento: tipoDoc,
		Nombre:        nombre,
		ApellidoPat:   apellidoPat,
		ApellidoMat:   apellidoMat,
		Telefono:      trimPtr(req.Telefono),
		Direccion:     trimPtr(req.Direccion),
	}
	if err := s.repo.Create(ctx, &cliente); err != nil {
		return nil, err
	}

	s.log.Info().Str("dni", cliente.DNI).Msg("cliente creado")
	return clienteToResponse(&cliente), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

// ListarClientes returns all clients, or the single match when a DNI query is
// present (empty list when it matches nobody).
func (s *clienteService) ListarClientes(ctx context.Context, dni string) ([]dto.ClienteResponse, error) {
	if dni != "" {
		c, err := s.repo.FindByDNI(ctx, dni)
		if err != nil {
			var notFound *apierror.NotFoundError
			if errors.As(err, &notFound) {
				return []dto.ClienteResponse{}, nil
			}
			return nil, err
		}
		return []dto.ClienteResponse{*clienteToResponse(c)}, nil
	}
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clienteService) ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.DNI != nil {
		c.DNI = strings.TrimSpace(*req.DNI)
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.ApellidoPat != nil {
		c.ApellidoPat = *req.ApellidoPat
	}
	if req.ApellidoMat != nil {
		c.ApellidoMat = *req.ApellidoMat
	}
	if req.Telefono != nil {
		c.Telefono = trimPtr(req.Telefono)
	}
	if req.Direccion != nil {
		c.Direccion = trimPtr(req.Direccion)
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) EliminarCliente(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ConsultarReniec resolves a DNI for frontend form autofill.
func (s *clienteService) ConsultarReniec(ctx context.Context, dni string) (*dto.ReniecResponse, error) {
	if !dniPattern.MatchString(dni) {
		return nil, apierror.NewValidation("DNI inválido")
	}
	data, err := s.consultarReniecCached(ctx, dni)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, apierror.NewNotFound("DNI en RENIEC")
	}
	return &dto.ReniecResponse{
		Nombre:      data.Nombres,
		ApellidoPat: data.ApellidoPaterno,
		ApellidoMat: data.ApellidoMaterno,
	}, nil
}

// consultarReniecCached wraps the RENIEC client with a Redis cache so repeated
// lookups of the same DNI (form retries, report filters) skip the external API.
func (s *clienteService) consultarReniecCached(ctx context.Context, dni string) (*infra.ReniecData, error) {
	if s.reniec == nil {
		return nil, nil
	}

	cacheKey := "reniec:" + dni
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var data infra.ReniecData
			if json.Unmarshal(raw, &data) == nil {
				return &data, nil
			}
		}
	}

	data, err := s.reniec.Consultar(ctx, dni)
	if err != nil || data == nil {
		return data, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(data); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, reniecCacheTTL).Err(); err != nil {
				s.log.Debug().Err(err).Msg("no se pudo cachear respuesta RENIEC")
			}
		}
	}
	return data, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:            c.ID.String(),
		DNI:           c.DNI,
		TipoDocumento: c.TipoDocumento,
		Nombre:        c.Nombre,
		ApellidoPat:   c.ApellidoPat,
		ApellidoMat:   c.ApellidoMat,
		Telefono:      c.Telefono,
		Direccion:     c.Direccion,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

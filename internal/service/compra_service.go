package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pericos457/botica/internal/apierror"
	"github.com/pericos457/botica/internal/dto"
	"github.com/pericos457/botica/internal/model"
	"github.com/pericos457/botica/internal/repository"
)

type CompraService interface {
	RegistrarCompra(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.RegistrarCompraResponse, error)
	ListarCompras(ctx context.Context) ([]dto.CompraResponse, error)
	ObtenerPorCodigo(ctx context.Context, codCompra string) (*dto.CompraResponse, error)
	ActualizarCompra(ctx context.Context, id uuid.UUID, req dto.ActualizarCompraRequest) (*dto.CompraResponse, error)
	EliminarCompra(ctx context.Context, id uuid.UUID) error
	ListarDetalles(ctx context.Context, filter dto.DetalleFilter) ([]dto.DetalleCompraRow, error)
}

type compraService struct {
	repo      repository.CompraRepository
	genCodigo GeneradorCodigo
	log       zerolog.Logger
}

// NewCompraService wires the purchase engine. genCodigo defaults to
// GenerarCodigoCompra when nil; tests inject a fixed generator to force
// code collisions.
func NewCompraService(repo repository.CompraRepository, genCodigo GeneradorCodigo, log zerolog.Logger) CompraService {
	if genCodigo == nil {
		genCodigo = GenerarCodigoCompra
	}
	return &compraService{repo: repo, genCodigo: genCodigo, log: log}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarCompra ──────────────────────────────────────────────────────────
// Atomic creation: validate → generate code → single transaction inserting the
// header plus all lines. Any failure rolls the whole purchase back; a
// duplicate cod_compra surfaces as apierror.ConflictError so the caller can
// retry with a fresh code.

func (s *compraService) RegistrarCompra(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.RegistrarCompraResponse, error) {
	if err := ValidarRegistroCompra(req); err != nil {
		return nil, err
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.NewValidation("cliente_id inválido: " + err.Error())
	}

	// Resolve line product ids before opening the transaction.
	detalles := make([]model.CompraDetalle, 0, len(req.Productos))
	for i, p := range req.Productos {
		pid, err := uuid.Parse(p.ProductoID)
		if err != nil {
			return nil, apierror.NewValidation("producto_id inválido: " + p.ProductoID)
		}
		detalles = append(detalles, model.CompraDetalle{
			ProductoID:  pid,
			Cantidad:    p.Cantidad,
			NumeroLinea: i + 1,
		})
	}

	compra := model.Compra{
		CodCompra:   s.genCodigo(),
		ClienteID:   clienteID,
		FechaCompra: time.Now(),
		Detalles:    detalles,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateTx(ctx, tx, &compra)
	})
	if txErr != nil {
		var conflict *apierror.ConflictError
		if errors.As(txErr, &conflict) {
			s.log.Warn().Str("cod_compra", compra.CodCompra).Msg("código de compra duplicado")
		}
		return nil, txErr
	}

	s.log.Info().
		Str("cod_compra", compra.CodCompra).
		Str("cliente_id", compra.ClienteID.String()).
		Int("lineas", len(compra.Detalles)).
		Msg("compra registrada")

	return &dto.RegistrarCompraResponse{
		Message:   "Compra registrada con éxito",
		CodCompra: compra.CodCompra,
		Details:   *compraToResponse(&compra),
	}, nil
}

func (s *compraService) ListarCompras(ctx context.Context) ([]dto.CompraResponse, error) {
	compras, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		out = append(out, *compraToResponse(&compras[i]))
	}
	return out, nil
}

func (s *compraService) ObtenerPorCodigo(ctx context.Context, codCompra string) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByCodigo(ctx, codCompra)
	if err != nil {
		return nil, err
	}
	return compraToResponse(compra), nil
}

// ActualizarCompra applies the partial fields accepted by PUT. The generated
// code and the line set are immutable here: lines exist only through the
// creation transaction.
func (s *compraService) ActualizarCompra(ctx context.Context, id uuid.UUID, req dto.ActualizarCompraRequest) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ClienteID != nil {
		clienteID, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.NewValidation("cliente_id inválido: " + err.Error())
		}
		compra.ClienteID = clienteID
	}
	if req.FechaCompra != nil {
		fecha, err := time.Parse("2006-01-02", *req.FechaCompra)
		if err != nil {
			return nil, apierror.NewValidation("fecha_compra inválida, formato esperado YYYY-MM-DD")
		}
		compra.FechaCompra = fecha
	}
	if err := s.repo.Update(ctx, compra); err != nil {
		return nil, err
	}
	return compraToResponse(compra), nil
}

func (s *compraService) EliminarCompra(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListarDetalles is the report aggregation query: one row per purchase line
// under the optional productName/clientDni filters, with the subtotal computed
// from the product's current catalog price. An empty result is a valid empty
// slice, never an error.
func (s *compraService) ListarDetalles(ctx context.Context, filter dto.DetalleFilter) ([]dto.DetalleCompraRow, error) {
	rows, err := s.repo.ListDetalles(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Subtotal = rows[i].PrecioUnitario.Mul(decimal.NewFromInt(int64(rows[i].Cantidad)))
	}
	return rows, nil
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	detalles := make([]dto.DetalleCompraResponse, 0, len(c.Detalles))
	for _, d := range c.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		detalles = append(detalles, dto.DetalleCompraResponse{
			ProductoID:  d.ProductoID.String(),
			Producto:    nombre,
			Cantidad:    d.Cantidad,
			NumeroLinea: d.NumeroLinea,
		})
	}
	return &dto.CompraResponse{
		ID:          c.ID.String(),
		CodCompra:   c.CodCompra,
		ClienteID:   c.ClienteID.String(),
		FechaCompra: c.FechaCompra.Format(time.RFC3339),
		Detalles:    detalles,
	}
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pericos457/botica/internal/apierror"
	"github.com/pericos457/botica/internal/dto"
	"github.com/pericos457/botica/internal/model"
)

// CompraRepository defines the data access contract for purchases.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type CompraRepository interface {
	// CreateTx persists a header plus its lines inside tx — callers own the
	// transaction boundary.
	CreateTx(ctx context.Context, tx *gorm.DB, c *model.Compra) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error)
	FindByCodigo(ctx context.Context, codCompra string) (*model.Compra, error)
	List(ctx context.Context) ([]model.Compra, error)
	Update(ctx context.Context, c *model.Compra) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListDetalles runs the flattened report join: one row per purchase line,
	// joined against client and product reference data.
	ListDetalles(ctx context.Context, filter dto.DetalleFilter) ([]dto.DetalleCompraRow, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) DB() *gorm.DB { return r.db }

func (r *compraRepo) CreateTx(ctx context.Context, tx *gorm.DB, c *model.Compra) error {
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierror.NewConflict("cod_compra")
		}
		return apierror.NewStorage("crear compra", err)
	}
	return nil
}

func (r *compraRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("compra")
		}
		return nil, apierror.NewStorage("buscar compra", err)
	}
	return &c, nil
}

func (r *compraRepo) FindByCodigo(ctx context.Context, codCompra string) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").
		Where("cod_compra = ?", codCompra).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("compra")
		}
		return nil, apierror.NewStorage("buscar compra", err)
	}
	return &c, nil
}

func (r *compraRepo) List(ctx context.Context) ([]model.Compra, error) {
	var compras []model.Compra
	err := r.db.WithContext(ctx).Preload("Detalles").
		Order("fecha_compra DESC").Find(&compras).Error
	if err != nil {
		return nil, apierror.NewStorage("listar compras", err)
	}
	return compras, nil
}

func (r *compraRepo) Update(ctx context.Context, c *model.Compra) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return apierror.NewStorage("actualizar compra", err)
	}
	return nil
}

// Delete removes the purchase and its lines. Deleting an absent id succeeds
// (idempotent).
func (r *compraRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("compra_id = ?", id).Delete(&model.CompraDetalle{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Compra{}).Error
	})
	if err != nil {
		return apierror.NewStorage("eliminar compra", err)
	}
	return nil
}

// ListDetalles joins compra_detalles × compras × clientes × productos into
// denormalized rows. Ordering is deterministic (fecha, codigo, linea) so
// repeated calls over unchanged data yield the same sequence. The price
// column is the product's current catalog price, not a purchase-time snapshot.
func (r *compraRepo) ListDetalles(ctx context.Context, filter dto.DetalleFilter) ([]dto.DetalleCompraRow, error) {
	q := r.db.WithContext(ctx).
		Table("compra_detalles AS d").
		Select(`compras.cod_compra,
			compras.fecha_compra,
			clientes.nombre AS cliente_nombre,
			clientes.apellido_pat AS cliente_apellido_pat,
			clientes.dni AS cliente_dni,
			productos.nombre AS producto_nombre,
			productos.precio AS precio_unitario,
			d.cantidad`).
		Joins("JOIN compras ON compras.id = d.compra_id").
		Joins("JOIN clientes ON clientes.id = compras.cliente_id").
		Joins("JOIN productos ON productos.id = d.producto_id")

	if filter.ProductName != "" {
		q = q.Where("LOWER(productos.nombre) LIKE LOWER(?)", "%"+filter.ProductName+"%")
	}
	if filter.ClientDni != "" {
		q = q.Where("clientes.dni = ?", filter.ClientDni)
	}

	var rows []dto.DetalleCompraRow
	err := q.Order("compras.fecha_compra ASC, compras.cod_compra ASC, d.numero_linea ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apierror.NewStorage("listar detalles", err)
	}
	return rows, nil
}

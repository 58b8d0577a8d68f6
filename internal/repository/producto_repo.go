package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pericos457/botica/internal/apierror"
	"github.com/pericos457/botica/internal/model"
)

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return apierror.NewStorage("crear producto", err)
	}
	return nil
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("producto")
		}
		return nil, apierror.NewStorage("buscar producto", err)
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	if err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre ASC").Find(&productos).Error; err != nil {
		return nil, apierror.NewStorage("listar productos", err)
	}
	return productos, nil
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return apierror.NewStorage("actualizar producto", err)
	}
	return nil
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).Update("activo", false).Error; err != nil {
		return apierror.NewStorage("eliminar producto", err)
	}
	return nil
}

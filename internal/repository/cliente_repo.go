package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pericos457/botica/internal/apierror"
	"github.com/pericos457/botica/internal/model"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByDNI(ctx context.Context, dni string) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierror.NewConflict("dni")
		}
		return apierror.NewStorage("crear cliente", err)
	}
	return nil
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("cliente")
		}
		return nil, apierror.NewStorage("buscar cliente", err)
	}
	return &c, nil
}

func (r *clienteRepo) FindByDNI(ctx context.Context, dni string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("dni = ?", dni).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("cliente")
		}
		return nil, apierror.NewStorage("buscar cliente", err)
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	if err := r.db.WithContext(ctx).Order("apellido_pat ASC").Find(&clientes).Error; err != nil {
		return nil, apierror.NewStorage("listar clientes", err)
	}
	return clientes, nil
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierror.NewConflict("dni")
		}
		return apierror.NewStorage("actualizar cliente", err)
	}
	return nil
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Cliente{}).Error; err != nil {
		return apierror.NewStorage("eliminar cliente", err)
	}
	return nil
}

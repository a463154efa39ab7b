package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/billdesk/billdesk-api/internal/domain/entity"
	domainRepo "github.com/billdesk/billdesk-api/internal/domain/repository"
	"github.com/billdesk/billdesk-api/pkg/pagination"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) GetLowStock(ctx context.Context, threshold int) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("stock < ?", threshold).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

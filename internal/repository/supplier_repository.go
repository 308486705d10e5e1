package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vendora/supplierctl/internal/models"
	"gorm.io/gorm"
)

// SupplierRepository defines the interface for supplier data access
type SupplierRepository interface {
	FindAll(ctx context.Context, country string) ([]models.Supplier, error)
	FindByBusinessKey(ctx context.Context, name, category string) (*models.Supplier, error)
	Count(ctx context.Context) (int64, error)
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) FindAll(ctx context.Context, country string) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	db := r.db.WithContext(ctx).Order("priority, name")
	if country != "" {
		db = db.Where("country = ?", country)
	}
	err := db.Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepository) FindByBusinessKey(ctx context.Context, name, category string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.WithContext(ctx).
		Where("name = ? AND category = ?", name, category).
		First(&supplier).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &supplier, nil
}

func (r *supplierRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Supplier{}).Count(&total).Error
	return total, err
}

// IsDuplicateKey reports whether the error is a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

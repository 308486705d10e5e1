package repository

import "gorm.io/gorm"

// Repositories aggregates all data access interfaces
type Repositories struct {
	User     UserRepository
	Supplier SupplierRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Supplier: NewSupplierRepository(db),
	}
}

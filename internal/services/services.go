package services

import (
	"github.com/vendora/supplierctl/internal/config"
	"github.com/vendora/supplierctl/internal/manifest"
	"github.com/vendora/supplierctl/internal/repository"
	"github.com/vendora/supplierctl/internal/storage"
	"gorm.io/gorm"
)

// MutationOptions carries the safety gates for one mutating invocation.
type MutationOptions struct {
	// Confirmed is the explicit opt-in (--yes flag or environment override).
	Confirmed bool

	// DryRun validates and writes the manifest but always rolls back.
	DryRun bool

	// AllowUnaudited lets a commit proceed when the manifest cannot be
	// written. Off by default: audit-before-commit.
	AllowUnaudited bool
}

// Services aggregates all toolkit operations
type Services struct {
	Import      *ImportService
	Export      *ExportService
	UserAdmin   *UserAdminService
	Maintenance *MaintenanceService
	Report      *ReportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, db *gorm.DB, store *storage.LocalStorage, cfg *config.Config) *Services {
	manifests := manifest.NewWriter(store)
	return &Services{
		Import:      NewImportService(repos.Supplier, db, manifests, cfg),
		Export:      NewExportService(repos.Supplier),
		UserAdmin:   NewUserAdminService(repos.User, db, manifests, cfg),
		Maintenance: NewMaintenanceService(db),
		Report:      NewReportService(manifests),
	}
}

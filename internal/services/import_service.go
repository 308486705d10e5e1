package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/vendora/supplierctl/internal/config"
	"github.com/vendora/supplierctl/internal/manifest"
	"github.com/vendora/supplierctl/internal/models"
	"github.com/vendora/supplierctl/internal/mutate"
	"github.com/vendora/supplierctl/internal/normalize"
	"github.com/vendora/supplierctl/internal/repository"
	"github.com/vendora/supplierctl/internal/sheets"
	"github.com/vendora/supplierctl/pkg/logger"
	"gorm.io/gorm"
)

// ImportService loads a supplier workbook into the database: sheet
// resolution, header normalization, record projection, then a single
// transactional upsert batch.
type ImportService struct {
	repo      repository.SupplierRepository
	db        *gorm.DB
	manifests *manifest.Writer
	cfg       *config.Config
	readRows  func(path, country string) ([]map[string]string, error)
}

func NewImportService(repo repository.SupplierRepository, db *gorm.DB, manifests *manifest.Writer, cfg *config.Config) *ImportService {
	return &ImportService{repo: repo, db: db, manifests: manifests, cfg: cfg, readRows: sheets.ReadRows}
}

// ImportResult is the batch summary the operator sees. Ineligible rows are
// counted, never silently dropped.
type ImportResult struct {
	RunID           string `json:"run_id"`
	Total           int    `json:"total"`
	Eligible        int    `json:"eligible"`
	RequiredMissing int    `json:"required_missing"`
	Affected        int64  `json:"affected"`
	DryRun          bool   `json:"dry_run"`
}

// ImportSuppliers reads the worksheet for the given country, normalizes and
// projects its rows, and upserts eligible records by (name, category) in one
// all-or-nothing batch.
func (s *ImportService) ImportSuppliers(ctx context.Context, file, country string, actorID uint, actorName string, opts MutationOptions) (*ImportResult, error) {
	if err := checkGate(opts); err != nil {
		return nil, err
	}

	rawRows, err := s.readRows(file, country)
	if err != nil {
		return nil, err
	}

	headers := normalize.HeaderUnion(rawRows)
	seq, summary := normalize.Project(rawRows, headers)

	var suppliers []models.Supplier
	for row := range seq {
		if !row.Eligible() {
			continue
		}
		suppliers = append(suppliers, row.ToSupplier(country, actorID, actorName))
	}

	result := &ImportResult{
		RunID:           uuid.NewString(),
		Total:           summary.Total,
		Eligible:        summary.Eligible,
		RequiredMissing: summary.RequiredMissing,
		DryRun:          opts.DryRun,
	}
	if summary.RequiredMissing > 0 {
		logger.Warn("rows missing required fields were not uploaded", "required_missing", summary.RequiredMissing)
	}
	if len(suppliers) == 0 {
		logger.Info("no upload-eligible rows", "file", file)
		return result, nil
	}

	countBefore, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	m := manifest.New(result.RunID, filepath.Base(file), "import_suppliers",
		map[string]interface{}{"supplier_count": countBefore},
		map[string]interface{}{"summary": result},
		opts.DryRun)
	if err := persistManifest(s.manifests, s.cfg, m, opts); err != nil {
		return nil, err
	}

	stmt := mutate.Statement{
		Name:  "upsert suppliers",
		Table: models.Supplier{}.TableName(),
		Exec: func(tx *gorm.DB) (int64, error) {
			return upsertSuppliers(tx, suppliers)
		},
	}

	mutator := mutate.New(s.db, mutate.Options{Confirmed: opts.Confirmed, DryRun: opts.DryRun})
	affected, runErr := mutator.Run(ctx, []mutate.Statement{stmt})
	finishManifest(ctx, s.manifests, m, runErr, opts.DryRun)
	if runErr != nil {
		return nil, runErr
	}

	result.Affected = affected
	logger.Info("import complete", "file", file, "total", result.Total,
		"eligible", result.Eligible, "required_missing", result.RequiredMissing,
		"affected", affected, "dry_run", opts.DryRun)
	return result, nil
}

// upsertSuppliers updates each record by its (name, category) business key
// and inserts the ones that matched nothing. Runs inside the mutator's open
// transaction.
func upsertSuppliers(tx *gorm.DB, suppliers []models.Supplier) (int64, error) {
	var affected int64
	for i := range suppliers {
		sup := suppliers[i]
		res := tx.Model(&models.Supplier{}).
			Where("name = ? AND category = ?", sup.Name, sup.Category).
			Updates(map[string]interface{}{
				"website":        sup.Website,
				"account_status": sup.AccountStatus,
				"status_detail":  sup.StatusDetail,
				"description":    sup.Description,
				"contact_name":   sup.ContactName,
				"contact_phone":  sup.ContactPhone,
				"contact_email":  sup.ContactEmail,
				"address":        sup.Address,
				"username":       sup.Username,
				"password":       sup.Password,
				"call_flag":      sup.CallFlag,
				"priority":       sup.Priority,
				"comments":       sup.Comments,
				"country":        sup.Country,
			})
		if res.Error != nil {
			return affected, res.Error
		}
		if res.RowsAffected > 0 {
			affected += res.RowsAffected
			continue
		}
		if err := tx.Create(&sup).Error; err != nil {
			if repository.IsDuplicateKey(err) {
				return affected, fmt.Errorf("duplicate supplier %q/%q: %w", sup.Name, sup.Category, err)
			}
			return affected, err
		}
		affected++
	}
	return affected, nil
}

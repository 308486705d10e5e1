package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/vendora/supplierctl/internal/database"
	"github.com/vendora/supplierctl/internal/models"
	"github.com/vendora/supplierctl/internal/mutate"
	"github.com/vendora/supplierctl/pkg/logger"
	"gorm.io/gorm"
)

// Table names come from operator input and are interpolated into TRUNCATE;
// only plain unquoted identifiers are accepted.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// MaintenanceService covers table truncation and store health checks.
type MaintenanceService struct {
	db *gorm.DB
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{db: db}
}

// TruncateTables empties the named tables in one transaction. Tables absent
// from the schema are skipped with a notice; the remaining valid targets
// still commit.
func (s *MaintenanceService) TruncateTables(ctx context.Context, tables []string, opts MutationOptions) error {
	if len(tables) == 0 {
		return errors.New("no tables specified")
	}

	stmts := make([]mutate.Statement, 0, len(tables))
	for _, table := range tables {
		if !tableNamePattern.MatchString(table) {
			return fmt.Errorf("invalid table name %q", table)
		}
		stmts = append(stmts, mutate.Statement{
			Name:  "truncate " + table,
			Table: table,
			Exec: func(tx *gorm.DB) (int64, error) {
				res := tx.Exec(fmt.Sprintf(`TRUNCATE TABLE "%s" RESTART IDENTITY CASCADE`, table))
				return res.RowsAffected, res.Error
			},
		})
	}

	mutator := mutate.New(s.db, mutate.Options{Confirmed: opts.Confirmed, DryRun: opts.DryRun})
	if _, err := mutator.Run(ctx, stmts); err != nil {
		return err
	}
	logger.Info("truncate complete", "tables", tables, "dry_run", opts.DryRun)
	return nil
}

// Health verifies connectivity and that the toolkit's tables exist.
func (s *MaintenanceService) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	for _, table := range []string{models.User{}.TableName(), models.Supplier{}.TableName()} {
		if !database.HasTable(s.db, table) {
			return fmt.Errorf("required table %q missing: run supplierctl bootstrap", table)
		}
	}
	return nil
}

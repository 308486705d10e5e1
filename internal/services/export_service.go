package services

import (
	"context"
	"strconv"

	"github.com/vendora/supplierctl/internal/models"
	"github.com/vendora/supplierctl/internal/normalize"
	"github.com/vendora/supplierctl/internal/repository"
	"github.com/vendora/supplierctl/internal/sheets"
	"github.com/vendora/supplierctl/pkg/logger"
)

// ExportService generates a single-sheet workbook from the supplier table.
type ExportService struct {
	repo repository.SupplierRepository
}

func NewExportService(repo repository.SupplierRepository) *ExportService {
	return &ExportService{repo: repo}
}

// ExportSuppliers writes every supplier (optionally filtered by country) to
// a workbook at path. Stored records are already canonical, so the header
// set is exactly the canonical field list, in canonical order.
func (s *ExportService) ExportSuppliers(ctx context.Context, path, country string) (int, error) {
	suppliers, err := s.repo.FindAll(ctx, normalizeCountry(country))
	if err != nil {
		return 0, err
	}

	headers := normalize.CanonicalFields()
	rows := make([]map[string]string, 0, len(suppliers))
	for i := range suppliers {
		rows = append(rows, supplierRow(&suppliers[i]))
	}

	sheet := sheets.SheetForCountry(country)
	if err := sheets.WriteWorkbook(path, sheet, headers, rows); err != nil {
		return 0, err
	}
	logger.Info("export complete", "path", path, "sheet", sheet, "rows", len(rows))
	return len(rows), nil
}

func supplierRow(sup *models.Supplier) map[string]string {
	return map[string]string{
		normalize.FieldName:          sup.Name,
		normalize.FieldWebsite:       sup.Website,
		normalize.FieldCategory:      sup.Category,
		normalize.FieldAccountStatus: sup.AccountStatus,
		normalize.FieldStatusDetail:  sup.StatusDetail,
		normalize.FieldDescription:   sup.Description,
		normalize.FieldContactName:   sup.ContactName,
		normalize.FieldContactPhone:  sup.ContactPhone,
		normalize.FieldContactEmail:  sup.ContactEmail,
		normalize.FieldAddress:       sup.Address,
		normalize.FieldUsername:      sup.Username,
		normalize.FieldPassword:      sup.Password,
		normalize.FieldCallFlag:      sup.CallFlag,
		normalize.FieldPriority:      strconv.Itoa(sup.Priority),
		normalize.FieldComments:      sup.Comments,
		normalize.FieldCountry:       sup.Country,
	}
}

func normalizeCountry(country string) string {
	codes := models.NormalizeCountries([]string{country})
	if len(codes) == 0 {
		return ""
	}
	return codes[0]
}

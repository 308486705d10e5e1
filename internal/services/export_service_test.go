package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/supplierctl/internal/models"
	"github.com/vendora/supplierctl/internal/normalize"
	"github.com/xuri/excelize/v2"
)

// Mock SupplierRepository
type mockSupplierRepository struct {
	mockFindAll func(ctx context.Context, country string) ([]models.Supplier, error)
	mockCount   func(ctx context.Context) (int64, error)
}

func (m *mockSupplierRepository) FindAll(ctx context.Context, country string) ([]models.Supplier, error) {
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx, country)
	}
	return nil, nil
}

func (m *mockSupplierRepository) FindByBusinessKey(ctx context.Context, name, category string) (*models.Supplier, error) {
	return nil, nil
}

func (m *mockSupplierRepository) Count(ctx context.Context) (int64, error) {
	if m.mockCount != nil {
		return m.mockCount(ctx)
	}
	return 0, nil
}

func TestExportSuppliers(t *testing.T) {
	mockRepo := &mockSupplierRepository{}
	mockRepo.mockFindAll = func(ctx context.Context, country string) ([]models.Supplier, error) {
		assert.Equal(t, "CA", country)
		return []models.Supplier{
			{Name: "Acme", Category: "Tools", Country: "CA", Priority: 1},
			{Name: "Globex", Category: "Hardware", Country: "CA", Priority: 2},
		}, nil
	}
	service := NewExportService(mockRepo)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	n, err := service.ExportSuppliers(context.Background(), path, "ca")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Exactly one sheet, named for the country.
	assert.Equal(t, []string{"Wholesale CANADA"}, f.GetSheetList())

	rows, err := f.GetRows("Wholesale CANADA")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, normalize.CanonicalFields(), rows[0])
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "Globex", rows[2][0])
}

func TestExportSuppliersEmptyTable(t *testing.T) {
	service := NewExportService(&mockSupplierRepository{})

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	n, err := service.ExportSuppliers(context.Background(), path, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Wholesale"}, f.GetSheetList())
}

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRowSynonyms(t *testing.T) {
	row := NormalizeRow(map[string]string{
		"Company Name": "Acme",
		"Category":     "Tools",
	})

	assert.Equal(t, "Acme", row[FieldName])
	assert.Equal(t, "Tools", row[FieldCategory])
	assert.Equal(t, "", row[FieldWebsite])

	// Every canonical field is present, even when unmatched.
	for _, field := range CanonicalFields() {
		_, ok := row[field]
		assert.True(t, ok, "missing canonical field %s", field)
	}
}

func TestNormalizeRowCanonicalNameWins(t *testing.T) {
	row := NormalizeRow(map[string]string{
		"name":         "Canonical Co",
		"Company Name": "Synonym Co",
		"CATEGORIA":    "Herramientas",
	})

	assert.Equal(t, "Canonical Co", row[FieldName])
	assert.Equal(t, "Herramientas", row[FieldCategory])
}

func TestNormalizeRowSynonymPriorityOrder(t *testing.T) {
	// "Name" outranks "Empresa" in the synonym table.
	row := NormalizeRow(map[string]string{
		"Empresa": "Empresa SA",
		"Name":    "First Match Inc",
	})
	assert.Equal(t, "First Match Inc", row[FieldName])
}

func TestNormalizeRowIdempotent(t *testing.T) {
	raw := map[string]string{
		"Company Name": "Acme",
		"CATEGORIA":    "Tools",
		"Telefono":     "555-0100",
		"Prioridad":    "2",
	}

	once := NormalizeRow(raw)
	twice := NormalizeRow(once)

	assert.Equal(t, once, twice)
}

func TestNormalizeRowEmptyValuesDoNotMatch(t *testing.T) {
	// An empty synonym value falls through to the next match.
	row := NormalizeRow(map[string]string{
		"Company Name": "",
		"Empresa":      "Fallback SA",
	})
	assert.Equal(t, "Fallback SA", row[FieldName])
}

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderUnionProperty(t *testing.T) {
	rows := []map[string]string{
		{"Company Name": "Acme", "Extra A": "x"},
		{"Category": "Tools", "Extra B": "y", "Extra A": "z"},
	}

	headers := HeaderUnion(rows)

	// Exactly canonical base ∪ observed keys, no duplicates.
	expected := append(CanonicalFields(), "Company Name", "Extra A", "Category", "Extra B")
	assert.ElementsMatch(t, expected, headers)

	seen := map[string]int{}
	for _, h := range headers {
		seen[h]++
	}
	for h, n := range seen {
		assert.Equal(t, 1, n, "duplicate header %s", h)
	}
}

func TestHeaderUnionOrdering(t *testing.T) {
	rows := []map[string]string{
		{"Zeta": "1"},
	}

	headers := HeaderUnion(rows)

	// Canonical headers first, extras in first-seen order after.
	require.Greater(t, len(headers), len(CanonicalFields()))
	assert.Equal(t, CanonicalFields(), headers[:len(CanonicalFields())])
	assert.Equal(t, "Zeta", headers[len(headers)-1])
}

func TestProjectFillsDefaults(t *testing.T) {
	rows := []map[string]string{
		{"Company Name": "Acme", "Category": "Tools"},
	}
	headers := HeaderUnion(rows)
	seq, summary := Project(rows, headers)

	var projected []ProjectedRow
	for row := range seq {
		projected = append(projected, row)
	}

	require.Len(t, projected, 1)
	row := projected[0]
	assert.Equal(t, "Acme", row[FieldName])
	assert.Equal(t, "Tools", row[FieldCategory])
	assert.Equal(t, "", row[FieldWebsite])
	for _, h := range headers {
		_, ok := row[h]
		assert.True(t, ok, "header %s not populated", h)
	}
	assert.True(t, row.Eligible())

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Eligible)
	assert.Equal(t, 0, summary.RequiredMissing)
}

func TestProjectCountsIneligibleRows(t *testing.T) {
	rows := []map[string]string{
		{"Company Name": "", "CATEGORIA": "Tools"},
		{"Company Name": "Acme", "CATEGORIA": "Tools"},
	}
	headers := HeaderUnion(rows)
	seq, summary := Project(rows, headers)

	var eligible, ineligible int
	for row := range seq {
		if row.Eligible() {
			eligible++
		} else {
			ineligible++
		}
	}

	// Ineligible rows are yielded and counted, not dropped.
	assert.Equal(t, 1, eligible)
	assert.Equal(t, 1, ineligible)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.RequiredMissing)
}

func TestProjectSinglePass(t *testing.T) {
	rows := []map[string]string{
		{"Company Name": "A", "Category": "X"},
		{"Company Name": "B", "Category": "Y"},
		{"Company Name": "C", "Category": "Z"},
	}
	headers := HeaderUnion(rows)
	seq, summary := Project(rows, headers)

	// Early break stops the sequence; the summary reflects consumed rows.
	for range seq {
		break
	}
	assert.Equal(t, 1, summary.Total)
}

func TestToSupplierPriorityClamping(t *testing.T) {
	cases := map[string]int{
		"1":    1,
		"5":    5,
		"9":    5,
		"0":    1,
		"":     3,
		"high": 3,
	}
	for raw, want := range cases {
		row := ProjectedRow{FieldName: "A", FieldCategory: "B", FieldPriority: raw}
		sup := row.ToSupplier("mx", 7, "ops")
		assert.Equal(t, want, sup.Priority, "priority %q", raw)
		assert.Equal(t, "MX", sup.Country)
		assert.Equal(t, uint(7), sup.CreatedByID)
	}
}

func TestToSupplierCountryFallsBackToRow(t *testing.T) {
	row := ProjectedRow{FieldName: "A", FieldCategory: "B", FieldCountry: "ca"}
	sup := row.ToSupplier("", 0, "")
	assert.Equal(t, "CA", sup.Country)
}

package normalize

import (
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/vendora/supplierctl/internal/models"
)

// ProjectedRow is a fully-populated row: every header in the union has a
// value, defaulting to the empty string.
type ProjectedRow map[string]string

// Summary aggregates per-batch projection counts. Ineligible rows are
// counted, never silently dropped.
type Summary struct {
	Total           int
	Eligible        int
	RequiredMissing int
}

// HeaderUnion returns the canonical base headers followed by every extra key
// observed across the raw rows, in first-seen order, without duplicates.
// Carrying the extras avoids silent column loss from source variance.
func HeaderUnion(rows []map[string]string) []string {
	headers := CanonicalFields()
	seen := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		seen[h] = struct{}{}
	}
	for _, row := range rows {
		for key := range row {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			headers = append(headers, key)
		}
	}
	return headers
}

// Project lazily converts raw rows into projected rows keyed by the given
// header union. The sequence is finite and single-pass; the summary is
// complete only once the sequence has been fully consumed.
func Project(rows []map[string]string, headers []string) (iter.Seq[ProjectedRow], *Summary) {
	summary := &Summary{}
	seq := func(yield func(ProjectedRow) bool) {
		for _, raw := range rows {
			normalized := NormalizeRow(raw)
			projected := make(ProjectedRow, len(headers))
			for _, h := range headers {
				if v, ok := normalized[h]; ok {
					projected[h] = v
				} else {
					projected[h] = raw[h]
				}
			}
			summary.Total++
			if projected[FieldName] != "" && projected[FieldCategory] != "" {
				summary.Eligible++
			} else {
				summary.RequiredMissing++
			}
			if !yield(projected) {
				return
			}
		}
	}
	return seq, summary
}

// Eligible reports whether the projected row carries both required business
// keys (name and category).
func (r ProjectedRow) Eligible() bool {
	return r[FieldName] != "" && r[FieldCategory] != ""
}

// ToSupplier builds the typed record past the normalization boundary.
// country overrides the row's own country column when non-empty.
func (r ProjectedRow) ToSupplier(country string, actorID uint, actorName string) models.Supplier {
	c := strings.ToUpper(strings.TrimSpace(country))
	if c == "" {
		c = strings.ToUpper(strings.TrimSpace(r[FieldCountry]))
	}
	return models.Supplier{
		Name:          r[FieldName],
		Website:       r[FieldWebsite],
		Category:      r[FieldCategory],
		AccountStatus: r[FieldAccountStatus],
		StatusDetail:  r[FieldStatusDetail],
		Description:   r[FieldDescription],
		ContactName:   r[FieldContactName],
		ContactPhone:  r[FieldContactPhone],
		ContactEmail:  r[FieldContactEmail],
		Address:       r[FieldAddress],
		Username:      r[FieldUsername],
		Password:      r[FieldPassword],
		CallFlag:      r[FieldCallFlag],
		Priority:      parsePriority(r[FieldPriority]),
		Comments:      r[FieldComments],
		Country:       c,
		CreatedByID:   actorID,
		CreatedByName: actorName,
		CreatedAt:     time.Now(),
	}
}

// parsePriority clamps to the 1..5 scale; anything unparseable gets the
// middle priority.
func parsePriority(raw string) int {
	p, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 3
	}
	if p < 1 {
		return 1
	}
	if p > 5 {
		return 5
	}
	return p
}

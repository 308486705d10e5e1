package sheets

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSheetNotFound is returned when the resolved worksheet name is absent
// from the workbook.
var ErrSheetNotFound = errors.New("worksheet not found")

// DefaultSheet is used for country codes without a dedicated worksheet.
const DefaultSheet = "Wholesale"

// countrySheets is the fixed jurisdiction→worksheet table.
var countrySheets = map[string]string{
	"CA": "Wholesale CANADA",
	"MX": "Wholesale MEXICO",
	"CN": "Wholesale CHINA",
	"BR": "Wholesale BRAZIL",
	"US": "Wholesale USA",
}

// SheetForCountry returns the worksheet name for a country code,
// case-insensitively. Unknown codes resolve to the default sheet.
func SheetForCountry(country string) string {
	if name, ok := countrySheets[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return name
	}
	return DefaultSheet
}

// ResolveSheet picks the worksheet for a country and verifies it exists in
// the workbook. The error lists the available sheets so the operator can see
// what the workbook actually contains.
func ResolveSheet(country string, available []string) (string, error) {
	name := SheetForCountry(country)
	for _, s := range available {
		if s == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, name, strings.Join(available, ", "))
}

package certificate

import (
	"regexp"
	"strings"

	"github.com/sunthewhat/easy-cert-portal/internal/spreadsheet"
	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9@.\-]`)

// ResolveEmailColumn picks the column holding recipient emails. Mapping
// entries win over sheet columns; within each, the first hit wins.
func ResolveEmailColumn(mapping model.ColumnMapping, sheet *spreadsheet.Sheet) (string, bool) {
	for _, fc := range mapping {
		if containsEmail(fc.Field) || containsEmail(fc.Column) {
			return fc.Column, true
		}
	}
	if sheet == nil {
		return "", false
	}
	for _, column := range sheet.Columns {
		if containsEmail(column) {
			return column, true
		}
	}
	return "", false
}

func containsEmail(s string) bool {
	return strings.Contains(strings.ToLower(s), "email")
}

// SanitizeEmail makes an email safe to embed in a file name.
func SanitizeEmail(email string) string {
	return unsafeFileChars.ReplaceAllString(email, "_")
}

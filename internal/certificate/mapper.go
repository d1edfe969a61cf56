package certificate

import (
	"strings"

	"github.com/sunthewhat/easy-cert-portal/internal/spreadsheet"
	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

// MaxFieldLength is the longest display value, in characters.
const MaxFieldLength = 100

// MapFields resolves every mapped template field against one record. Missing
// or blank cells produce an empty value.
func MapFields(mapping model.ColumnMapping, record spreadsheet.Record) map[string]string {
	fields := make(map[string]string, len(mapping))
	for _, fc := range mapping {
		value, ok := record[fc.Column]
		if !ok || strings.TrimSpace(value) == "" {
			fields[fc.Field] = ""
			continue
		}
		fields[fc.Field] = truncate(value, MaxFieldLength)
	}
	return fields
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

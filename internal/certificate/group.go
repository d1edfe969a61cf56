package certificate

import (
	"time"

	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

type DateGroup struct {
	Date         string
	Certificates []model.CertificateRecord
}

// GroupByDate partitions records by calendar day in loc. Groups appear in the
// order their first record does; records keep their relative order.
func GroupByDate(records []model.CertificateRecord, loc *time.Location) []DateGroup {
	if loc == nil {
		loc = time.Local
	}

	var groups []DateGroup
	index := map[string]int{}
	for _, r := range records {
		day := r.GeneratedAt.In(loc).Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DateGroup{Date: day})
		}
		groups[i].Certificates = append(groups[i].Certificates, r)
	}
	return groups
}

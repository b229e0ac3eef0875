package analytics

import (
	"sort"
	"time"

	"ticket-analytics/internal/model"
)

// LateThreshold is how far past ticket-date midnight a record may be entered
// before it counts as a late submission. The comparison is strict.
const LateThreshold = 24 * time.Hour

// LateSubmissions returns the tickets entered more than LateThreshold after
// the midnight of their ticket date, most recently entered first.
func LateSubmissions(batch []model.TicketRecord) []model.LateSubmissionRow {
	late := make([]model.TicketRecord, 0)
	for _, t := range batch {
		if submissionLag(t) > LateThreshold {
			late = append(late, t)
		}
	}
	sort.SliceStable(late, func(i, j int) bool {
		return late[i].CreatedAt.After(late[j].CreatedAt)
	})

	rows := make([]model.LateSubmissionRow, 0, len(late))
	for _, t := range late {
		days := int(submissionLag(t) / (24 * time.Hour))
		rows = append(rows, model.LateSubmissionRow{
			TicketNumber: t.TicketNumber,
			TicketDate:   t.TicketDay(),
			SystemDate:   t.CreatedAt.Format(model.DateTimeLayout),
			LagTime:      formatLag(days),
			SignedBy:     t.SignedBy,
			JobName:      t.JobName,
			Hauler:       t.HaulingCompany,
		})
	}
	return rows
}

func submissionLag(t model.TicketRecord) time.Duration {
	d := t.TicketDate
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return t.CreatedAt.Sub(midnight)
}

// Package analytics turns a batch of ticket records into dashboard KPIs,
// grouped summary tables and the two forensic reports. Every function is a
// pure function of its arguments.
package analytics

import (
	"errors"
	"fmt"
	"sort"

	"ticket-analytics/internal/model"
)

var ErrMalformedTicket = errors.New("malformed ticket")

// ValidateBatch rejects the whole batch on the first record that cannot be
// aggregated.
func ValidateBatch(batch []model.TicketRecord) error {
	for i, t := range batch {
		switch {
		case t.TicketNumber == "":
			return fmt.Errorf("%w: record %d has no ticket number", ErrMalformedTicket, i)
		case t.TicketDate.IsZero():
			return fmt.Errorf("%w: ticket %s has no ticket date", ErrMalformedTicket, t.TicketNumber)
		case t.CreatedAt.IsZero():
			return fmt.Errorf("%w: ticket %s has no creation time", ErrMalformedTicket, t.TicketNumber)
		case !t.Direction.Valid():
			return fmt.Errorf("%w: ticket %s has direction %q", ErrMalformedTicket, t.TicketNumber, t.Direction)
		}
	}
	return nil
}

// FilterTickets returns the records of batch that satisfy filter, in input order.
func FilterTickets(batch []model.TicketRecord, filter model.TicketFilter) []model.TicketRecord {
	result := make([]model.TicketRecord, 0, len(batch))
	if filter.Range.Inverted() {
		return result
	}
	for _, t := range batch {
		if Matches(t, filter) {
			result = append(result, t)
		}
	}
	return result
}

// Matches applies the tenant, the inclusive date range and every field
// selection with exact equality. A zero range bound is open.
func Matches(t model.TicketRecord, filter model.TicketFilter) bool {
	if t.CompanyID != filter.CompanyID {
		return false
	}
	day := t.TicketDay()
	if !filter.Range.From.IsZero() && day < filter.Range.From.Format(model.DateLayout) {
		return false
	}
	if !filter.Range.To.IsZero() && day > filter.Range.To.Format(model.DateLayout) {
		return false
	}
	return filter.JobName.Matches(t.JobName) &&
		filter.Material.Matches(t.Material) &&
		filter.HaulingCompany.Matches(t.HaulingCompany) &&
		filter.TruckType.Matches(t.TruckType) &&
		filter.Direction.Matches(string(t.Direction))
}

// SortForGrid orders tickets newest first by ticket date, then creation time.
func SortForGrid(tickets []model.TicketRecord) {
	sort.SliceStable(tickets, func(i, j int) bool {
		di, dj := tickets[i].TicketDay(), tickets[j].TicketDay()
		if di != dj {
			return di > dj
		}
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
}

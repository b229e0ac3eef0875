package analytics

import "ticket-analytics/internal/model"

// JobKPIs counts tickets per direction and reports the latest ticket date.
func JobKPIs(batch []model.TicketRecord) model.JobKPIs {
	var imports, exports int
	lastActive := ""
	for _, t := range batch {
		switch t.Direction {
		case model.DirectionImport:
			imports++
		case model.DirectionExport:
			exports++
		}
		if day := t.TicketDay(); day > lastActive {
			lastActive = day
		}
	}
	if lastActive == "" {
		lastActive = model.EmptyPlaceholder
	}
	return model.JobKPIs{
		TotalTickets: len(batch),
		FlowBalance:  formatFlowBalance(imports, exports),
		LastActive:   lastActive,
	}
}

// MaterialKPIs reports the busiest import source and export destination.
func MaterialKPIs(batch []model.TicketRecord) model.MaterialKPIs {
	sources := make(map[string]int)
	destinations := make(map[string]int)
	jobs := make(map[string]struct{})
	for _, t := range batch {
		jobs[t.JobName] = struct{}{}
		if t.Direction == model.DirectionImport {
			sources[t.DestinationOrigin]++
		} else {
			destinations[t.DestinationOrigin]++
		}
	}
	return model.MaterialKPIs{
		TotalTickets:   len(batch),
		TopSource:      topKey(sources),
		TopDestination: topKey(destinations),
		ActiveJobs:     len(jobs),
	}
}

// HaulerKPIs counts distinct trucks and jobs.
func HaulerKPIs(batch []model.TicketRecord) model.HaulerKPIs {
	trucks := make(map[string]struct{})
	jobs := make(map[string]struct{})
	for _, t := range batch {
		trucks[t.TruckNumber] = struct{}{}
		jobs[t.JobName] = struct{}{}
	}
	return model.HaulerKPIs{
		TotalTickets: len(batch),
		UniqueTrucks: len(trucks),
		ActiveJobs:   len(jobs),
	}
}

// topKey returns the key with the highest count; equal counts go to the
// lexicographically smallest key.
func topKey(counts map[string]int) string {
	best, bestCount := model.EmptyPlaceholder, 0
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < best) {
			best, bestCount = key, count
		}
	}
	return best
}

package analytics

import (
	"sort"

	"ticket-analytics/internal/model"
)

// Group is one distinct key present in a batch with the number of records
// that share it.
type Group[K comparable] struct {
	Key   K
	Total int
}

// GroupCount counts records per key. Groups come back in first-seen order and
// only for keys that occur in batch.
func GroupCount[K comparable](batch []model.TicketRecord, key func(model.TicketRecord) K) []Group[K] {
	index := make(map[K]int)
	groups := make([]Group[K], 0)
	for _, t := range batch {
		k := key(t)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K]{Key: k})
		}
		groups[i].Total++
	}
	return groups
}

type pair struct {
	first, second string
}

// sortGroups orders by total descending, then by key fields ascending.
func sortGroups(groups []Group[pair]) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.Key.first != b.Key.first {
			return a.Key.first < b.Key.first
		}
		return a.Key.second < b.Key.second
	})
}

func countPairs(batch []model.TicketRecord, key func(model.TicketRecord) pair) []Group[pair] {
	groups := GroupCount(batch, key)
	sortGroups(groups)
	return groups
}

// VendorSummary counts tickets per hauling company and truck type.
func VendorSummary(batch []model.TicketRecord) []model.VendorSummaryRow {
	groups := countPairs(batch, func(t model.TicketRecord) pair {
		return pair{t.HaulingCompany, t.TruckType}
	})
	rows := make([]model.VendorSummaryRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, model.VendorSummaryRow{CompanyName: g.Key.first, TruckType: g.Key.second, TotalTickets: g.Total})
	}
	return rows
}

// MaterialSummary counts tickets per material.
func MaterialSummary(batch []model.TicketRecord) []model.MaterialSummaryRow {
	groups := countPairs(batch, func(t model.TicketRecord) pair {
		return pair{first: t.Material}
	})
	rows := make([]model.MaterialSummaryRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, model.MaterialSummaryRow{MaterialName: g.Key.first, TotalTickets: g.Total})
	}
	return rows
}

// SitesSummary counts tickets per external site and direction.
func SitesSummary(batch []model.TicketRecord) []model.SitesSummaryRow {
	groups := countPairs(batch, func(t model.TicketRecord) pair {
		return pair{t.DestinationOrigin, string(t.Direction)}
	})
	rows := make([]model.SitesSummaryRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, model.SitesSummaryRow{
			ExternalSiteName: g.Key.first,
			Direction:        model.Direction(g.Key.second),
			TotalTickets:     g.Total,
		})
	}
	return rows
}

// JobsSummary counts tickets per job and direction.
func JobsSummary(batch []model.TicketRecord) []model.JobsSummaryRow {
	groups := countPairs(batch, func(t model.TicketRecord) pair {
		return pair{t.JobName, string(t.Direction)}
	})
	rows := make([]model.JobsSummaryRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, model.JobsSummaryRow{
			JobName:      g.Key.first,
			Direction:    model.Direction(g.Key.second),
			TotalTickets: g.Total,
		})
	}
	return rows
}

// BillableUnitsSummary counts tickets per truck type.
func BillableUnitsSummary(batch []model.TicketRecord) []model.BillableUnitsRow {
	groups := countPairs(batch, func(t model.TicketRecord) pair {
		return pair{first: t.TruckType}
	})
	rows := make([]model.BillableUnitsRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, model.BillableUnitsRow{TruckType: g.Key.first, TotalTickets: g.Total})
	}
	return rows
}

// CostCenterSummary counts tickets per job.
func CostCenterSummary(batch []model.TicketRecord) []model.CostCenterRow {
	groups := countPairs(batch, func(t model.TicketRecord) pair {
		return pair{first: t.JobName}
	})
	rows := make([]model.CostCenterRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, model.CostCenterRow{JobName: g.Key.first, TotalTickets: g.Total})
	}
	return rows
}

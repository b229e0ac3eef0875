package analytics

import (
	"math"
	"sort"

	"ticket-analytics/internal/model"
)

const (
	slowThresholdPercent = 115
	minLoadHours         = 0.1
	clockLayout          = "3:04 PM"
)

// routeKey identifies all hauling for one job to one external site on one day.
type routeKey struct {
	date string
	job  string
	site string
}

type routeGroup struct {
	key     routeKey
	tickets []model.TicketRecord
}

type truckCycle struct {
	truck        string
	tickets      []model.TicketRecord
	impliedHours float64
	avgCycle     int
}

func (c truckCycle) singleLoad() bool {
	return len(c.tickets) < 2
}

// EfficiencyOutliers benchmarks every truck against its peers on the same
// route and day. Rows come back newest day first.
func EfficiencyOutliers(batch []model.TicketRecord) []model.EfficiencyOutlierRow {
	rows := make([]model.EfficiencyOutlierRow, 0)
	for _, group := range groupRoutes(batch) {
		rows = append(rows, analyzeRoute(group)...)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.JobName != b.JobName {
			return a.JobName < b.JobName
		}
		if a.Route != b.Route {
			return a.Route < b.Route
		}
		return a.TruckNumber < b.TruckNumber
	})
	return rows
}

func groupRoutes(batch []model.TicketRecord) []routeGroup {
	index := make(map[routeKey]int)
	groups := make([]routeGroup, 0)
	for _, t := range batch {
		key := routeKey{date: t.TicketDay(), job: t.JobName, site: t.DestinationOrigin}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, routeGroup{key: key})
		}
		groups[i].tickets = append(groups[i].tickets, t)
	}
	return groups
}

func analyzeRoute(group routeGroup) []model.EfficiencyOutlierRow {
	trucks := GroupCount(group.tickets, func(t model.TicketRecord) string { return t.TruckNumber })
	fleetAvgLoads := round1(float64(len(group.tickets)) / float64(len(trucks)))
	route := routeLabel(group)

	cycles := make([]truckCycle, 0, len(trucks))
	for _, truck := range trucks {
		cycles = append(cycles, measureTruck(truck.Key, group.tickets))
	}

	rows := make([]model.EfficiencyOutlierRow, 0, len(cycles))
	for i, c := range cycles {
		benchmark := fleetBenchmark(cycles, i)
		first, last := c.tickets[0], c.tickets[len(c.tickets)-1]
		rows = append(rows, model.EfficiencyOutlierRow{
			Date:            group.key.date,
			JobName:         group.key.job,
			Route:           route,
			TruckNumber:     c.truck,
			HaulerName:      haulerName(first),
			TotalTickets:    len(c.tickets),
			WorkDuration:    formatWorkDuration(c.impliedHours),
			MyAvgCycle:      c.avgCycle,
			FleetBenchmark:  benchmark,
			Status:          classify(c, benchmark),
			FleetAvgLoads:   fleetAvgLoads,
			ThisTruckLoads:  len(c.tickets),
			FirstTicketTime: first.CreatedAt.Format(clockLayout),
			LastTicketTime:  last.CreatedAt.Format(clockLayout),
			ImpliedHours:    c.impliedHours,
			LoadsPerHour:    round1(float64(len(c.tickets)) / math.Max(c.impliedHours, minLoadHours)),
		})
	}
	return rows
}

// measureTruck computes the elapsed span and the minutes per completed cycle
// of one truck. N tickets span N-1 cycles.
func measureTruck(truck string, routeTickets []model.TicketRecord) truckCycle {
	tickets := make([]model.TicketRecord, 0)
	for _, t := range routeTickets {
		if t.TruckNumber == truck {
			tickets = append(tickets, t)
		}
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
	})

	c := truckCycle{truck: truck, tickets: tickets}
	span := tickets[len(tickets)-1].CreatedAt.Sub(tickets[0].CreatedAt)
	c.impliedHours = round1(span.Hours())
	if !c.singleLoad() {
		c.avgCycle = roundMinutes(c.impliedHours * 60 / float64(len(tickets)-1))
	}
	return c
}

// fleetBenchmark averages the cycle of every other multi-load truck on the
// route. Without such peers the truck is its own benchmark.
func fleetBenchmark(cycles []truckCycle, self int) int {
	sum, peers := 0, 0
	for i, c := range cycles {
		if i == self || c.singleLoad() {
			continue
		}
		sum += c.avgCycle
		peers++
	}
	if peers == 0 {
		return cycles[self].avgCycle
	}
	return roundMinutes(float64(sum) / float64(peers))
}

// classify flags single loads grey and cycles more than 15% above the
// benchmark red. Integer math keeps the threshold exact.
func classify(c truckCycle, benchmark int) model.OutlierStatus {
	switch {
	case c.singleLoad():
		return model.StatusGrey
	case c.avgCycle*100 > benchmark*slowThresholdPercent:
		return model.StatusRed
	default:
		return model.StatusGreen
	}
}

// routeLabel prefers "<material> → <site>" using the route's most common
// material and falls back to "<job> / <site>".
func routeLabel(group routeGroup) string {
	materials := make(map[string]int)
	for _, t := range group.tickets {
		if t.Material != "" {
			materials[t.Material]++
		}
	}
	if len(materials) == 0 {
		return group.key.job + " / " + group.key.site
	}
	return topKey(materials) + " → " + group.key.site
}

func haulerName(t model.TicketRecord) *string {
	if t.HaulingCompany == "" {
		return nil
	}
	name := t.HaulingCompany
	return &name
}

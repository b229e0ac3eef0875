package export

import (
	"time"

	"ticket-analytics/internal/model"
)

func TicketsSheet(title string, tickets []model.TicketRecord, now time.Time) Sheet {
	return Sheet{
		Title:       title,
		GeneratedAt: now,
		Rows:        len(tickets),
		Columns: []Column{
			{Label: "Ticket #", Value: func(i int) interface{} { return tickets[i].TicketNumber }},
			{Label: "Ticket Date", Width: 12, Value: func(i int) interface{} { return tickets[i].TicketDay() }},
			{Label: "Created At", Width: 20, Value: func(i int) interface{} { return tickets[i].CreatedAt.Format(model.DateTimeLayout) }},
			{Label: "Job", Width: 24, Value: func(i int) interface{} { return tickets[i].JobName }},
			{Label: "Direction", Width: 10, Value: func(i int) interface{} { return string(tickets[i].Direction) }},
			{Label: "Destination / Origin", Width: 24, Value: func(i int) interface{} { return tickets[i].DestinationOrigin }},
			{Label: "Hauling Company", Width: 22, Value: func(i int) interface{} { return tickets[i].HaulingCompany }},
			{Label: "Material", Value: func(i int) interface{} { return tickets[i].Material }},
			{Label: "Truck #", Width: 12, Value: func(i int) interface{} { return tickets[i].TruckNumber }},
			{Label: "Truck Type", Value: func(i int) interface{} { return tickets[i].TruckType }},
			{Label: "Driver", Value: func(i int) interface{} { return tickets[i].DriverName }},
			{Label: "Hauler Ticket #", Value: func(i int) interface{} { return tickets[i].HaulerTicketNumber.String() }},
			{Label: "Signed By", Value: func(i int) interface{} { return tickets[i].SignedBy }},
		},
	}
}

func LateSubmissionsSheet(rows []model.LateSubmissionRow, now time.Time) Sheet {
	return Sheet{
		Title:       "Late Submissions",
		GeneratedAt: now,
		Rows:        len(rows),
		Columns: []Column{
			{Label: "Ticket #", Value: func(i int) interface{} { return rows[i].TicketNumber }},
			{Label: "Ticket Date", Width: 12, Value: func(i int) interface{} { return rows[i].TicketDate }},
			{Label: "System Date", Width: 20, Value: func(i int) interface{} { return rows[i].SystemDate }},
			{Label: "Lag", Width: 10, Value: func(i int) interface{} { return rows[i].LagTime }},
			{Label: "Signed By", Value: func(i int) interface{} { return rows[i].SignedBy }},
			{Label: "Job", Width: 24, Value: func(i int) interface{} { return rows[i].JobName }},
			{Label: "Hauler", Width: 22, Value: func(i int) interface{} { return rows[i].Hauler }},
		},
	}
}

func EfficiencyOutliersSheet(rows []model.EfficiencyOutlierRow, now time.Time) Sheet {
	return Sheet{
		Title:       "Efficiency Outliers",
		GeneratedAt: now,
		Rows:        len(rows),
		Columns: []Column{
			{Label: "Date", Width: 12, Value: func(i int) interface{} { return rows[i].Date }},
			{Label: "Job", Width: 24, Value: func(i int) interface{} { return rows[i].JobName }},
			{Label: "Route", Width: 30, Value: func(i int) interface{} { return rows[i].Route }},
			{Label: "Truck #", Width: 12, Value: func(i int) interface{} { return rows[i].TruckNumber }},
			{Label: "Hauler", Width: 22, Value: func(i int) interface{} {
				if rows[i].HaulerName == nil {
					return ""
				}
				return *rows[i].HaulerName
			}},
			{Label: "Tickets", Width: 10, Value: func(i int) interface{} { return rows[i].TotalTickets }},
			{Label: "Work Duration", Width: 14, Value: func(i int) interface{} { return rows[i].WorkDuration }},
			{Label: "My Avg Cycle (min)", Value: func(i int) interface{} { return rows[i].MyAvgCycle }},
			{Label: "Fleet Benchmark (min)", Value: func(i int) interface{} { return rows[i].FleetBenchmark }},
			{Label: "Fleet Avg Loads", Value: func(i int) interface{} { return rows[i].FleetAvgLoads }},
			{Label: "Status", Width: 10, Value: func(i int) interface{} { return string(rows[i].Status) }},
		},
	}
}

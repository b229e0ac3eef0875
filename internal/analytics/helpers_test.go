package analytics

import (
	"strconv"
	"testing"
	"time"

	"ticket-analytics/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func stamp(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(model.DateTimeLayout, s)
	if err != nil {
		t.Fatalf("parse timestamp %q: %v", s, err)
	}
	return ts
}

type ticketOpt func(*model.TicketRecord)

func withJob(job string) ticketOpt {
	return func(r *model.TicketRecord) { r.JobName = job }
}

func withSite(site string) ticketOpt {
	return func(r *model.TicketRecord) { r.DestinationOrigin = site }
}

func withTruck(truck string) ticketOpt {
	return func(r *model.TicketRecord) { r.TruckNumber = truck }
}

func withDirection(d model.Direction) ticketOpt {
	return func(r *model.TicketRecord) { r.Direction = d }
}

func withMaterial(m string) ticketOpt {
	return func(r *model.TicketRecord) { r.Material = m }
}

func withHauler(h string) ticketOpt {
	return func(r *model.TicketRecord) { r.HaulingCompany = h }
}

func withCompany(c string) ticketOpt {
	return func(r *model.TicketRecord) { r.CompanyID = c }
}

func withTruckType(tt string) ticketOpt {
	return func(r *model.TicketRecord) { r.TruckType = tt }
}

var ticketSeq int

func ticket(t *testing.T, date, createdAt string, opts ...ticketOpt) model.TicketRecord {
	t.Helper()
	ticketSeq++
	r := model.TicketRecord{
		CompanyID:          "acme",
		TicketNumber:       "TKT-" + strconv.Itoa(2000+ticketSeq),
		TicketDate:         day(t, date),
		CreatedAt:          stamp(t, createdAt),
		JobName:            "Alpha",
		Direction:          model.DirectionImport,
		DestinationOrigin:  "Quarry",
		HaulingCompany:     "ABC Trucking",
		Material:           "Gravel",
		TruckNumber:        "T1",
		TruckType:          "Tri-Axle",
		DriverName:         "Pat Lee",
		SignedBy:           "Jane Smith",
		HaulerTicketNumber: model.ParseHaulerTicketRef("HT-1001"),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticket-analytics/internal/config"
	"ticket-analytics/internal/model"
)

type fakeSource struct {
	records    []model.TicketRecord
	photos     map[string]model.TicketPhotos
	loads      int
	photoLoads int
	lastScope model.Scope
	lastRange model.DateRange
}

func (f *fakeSource) LoadTickets(_ context.Context, scope model.Scope, rng model.DateRange) ([]model.TicketRecord, error) {
	f.loads++
	f.lastScope = scope
	f.lastRange = rng
	out := make([]model.TicketRecord, 0)
	for _, r := range f.records {
		if r.CompanyID == scope.CompanyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSource) LoadPhotos(context.Context, model.Scope, model.DateRange) (map[string]model.TicketPhotos, error) {
	f.photoLoads++
	return f.photos, nil
}

func (f *fakeSource) TicketByNumber(_ context.Context, scope model.Scope, number string) (*model.TicketDetail, error) {
	for _, r := range f.records {
		if r.CompanyID == scope.CompanyID && r.TicketNumber == number {
			return &model.TicketDetail{Ticket: r}, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSource) Lookups(context.Context, model.Scope) (model.LookupLists, error) {
	return model.LookupLists{Jobs: []string{"Alpha"}}, nil
}

func record(company, number, date, created string, truck string) model.TicketRecord {
	d, _ := time.Parse(model.DateLayout, date)
	c, _ := time.Parse(model.DateTimeLayout, created)
	return model.TicketRecord{
		CompanyID:         company,
		TicketNumber:      number,
		TicketDate:        d,
		CreatedAt:         c,
		JobName:           "Alpha",
		Direction:         model.DirectionImport,
		DestinationOrigin: "Quarry",
		HaulingCompany:    "ABC Trucking",
		Material:          "Gravel",
		TruckNumber:       truck,
		TruckType:         "Tri-Axle",
	}
}

func newTestService(records ...model.TicketRecord) (*ReportService, *fakeSource) {
	src := &fakeSource{records: records}
	svc := NewReportService(src, config.ReportConfig{
		DefaultRangeDays: 30,
		MaxRangeDays:     366,
		DefaultPageSize:  2,
		MaxPageSize:      10,
		ExportMaxRows:    2,
	})
	svc.now = func() time.Time { return time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC) }
	return svc, src
}

func manager(companies ...string) model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleManager, CompanyIDs: companies}
}

func janRange() model.DateRange {
	return model.DateRange{
		From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestServiceScopesToTenant(t *testing.T) {
	svc, src := newTestService(
		record("acme", "TKT-1", "2025-01-05", "2025-01-05 08:00:00", "T1"),
		record("beta", "TKT-2", "2025-01-05", "2025-01-05 09:00:00", "T2"),
	)
	ctx := context.Background()

	kpis, err := svc.HaulerKPIs(ctx, manager("acme"), model.TicketFilter{Range: janRange()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.TotalTickets != 1 || src.lastScope.CompanyID != "acme" {
		t.Fatalf("expected only acme tickets, got %+v via %+v", kpis, src.lastScope)
	}

	_, err = svc.HaulerKPIs(ctx, manager("acme"), model.TicketFilter{CompanyID: "beta"})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied for foreign tenant, got %v", err)
	}

	_, err = svc.HaulerKPIs(ctx, manager("acme", "beta"), model.TicketFilter{})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected company to be required with several companies, got %v", err)
	}
}

func TestServiceInvertedRangeSkipsFetch(t *testing.T) {
	svc, src := newTestService(record("acme", "TKT-1", "2025-01-05", "2025-01-05 08:00:00", "T1"))
	filter := model.TicketFilter{Range: model.DateRange{
		From: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}}
	kpis, err := svc.JobKPIs(context.Background(), manager("acme"), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.TotalTickets != 0 || kpis.LastActive != model.EmptyPlaceholder {
		t.Fatalf("expected empty-state kpis, got %+v", kpis)
	}
	if src.loads != 0 {
		t.Fatalf("expected no fetch for inverted range, got %d", src.loads)
	}
}

func TestServiceDefaultsRange(t *testing.T) {
	svc, src := newTestService()
	if _, err := svc.JobKPIs(context.Background(), manager("acme"), model.TicketFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := src.lastRange.From.Format(model.DateLayout); got != "2025-01-01" {
		t.Fatalf("expected default range to start 2025-01-01, got %s", got)
	}
}

func TestServiceRejectsMalformedBatch(t *testing.T) {
	bad := record("acme", "TKT-1", "2025-01-05", "2025-01-05 08:00:00", "T1")
	bad.Direction = "Both"
	svc, _ := newTestService(bad)
	_, err := svc.MaterialKPIs(context.Background(), manager("acme"), model.TicketFilter{Range: janRange()})
	if !errors.Is(err, ErrMalformedTicket) {
		t.Fatalf("expected ErrMalformedTicket, got %v", err)
	}
}

func TestServiceForensicRequiresAuditRole(t *testing.T) {
	svc, _ := newTestService()
	viewer := model.Principal{UserID: uuid.New(), Role: model.RoleViewer, CompanyIDs: []string{"acme"}}
	if _, err := svc.LateSubmissions(context.Background(), viewer, model.TicketFilter{}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if _, err := svc.EfficiencyOutliers(context.Background(), viewer, model.TicketFilter{}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestServiceTicketsPaging(t *testing.T) {
	svc, _ := newTestService(
		record("acme", "TKT-1", "2025-01-03", "2025-01-03 08:00:00", "T1"),
		record("acme", "TKT-2", "2025-01-05", "2025-01-05 08:00:00", "T1"),
		record("acme", "TKT-3", "2025-01-04", "2025-01-04 08:00:00", "T1"),
	)
	ctx := context.Background()
	filter := model.TicketFilter{Range: janRange()}

	first, err := svc.Tickets(ctx, manager("acme"), filter, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Page != 1 || first.PageSize != 2 || first.Total != 3 || len(first.Items) != 2 {
		t.Fatalf("unexpected first page: %+v", first)
	}
	if first.Items[0].TicketNumber != "TKT-2" || first.Items[1].TicketNumber != "TKT-3" {
		t.Fatalf("expected newest first, got %s, %s", first.Items[0].TicketNumber, first.Items[1].TicketNumber)
	}

	beyond, err := svc.Tickets(ctx, manager("acme"), filter, 5, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if beyond.PageSize != 10 || len(beyond.Items) != 0 {
		t.Fatalf("expected empty clamped page, got %+v", beyond)
	}

	last, err := svc.Tickets(ctx, manager("acme"), filter, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(last.Items) != 1 || last.Items[0].TicketNumber != "TKT-1" {
		t.Fatalf("expected the oldest ticket alone on page 2, got %+v", last.Items)
	}

	huge, err := svc.Tickets(ctx, manager("acme"), filter, 1<<62, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(huge.Items) != 0 || huge.Total != 3 {
		t.Fatalf("expected an empty page for an enormous page number, got %+v", huge)
	}

	exported, err := svc.ExportTickets(ctx, manager("acme"), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exported) != 2 {
		t.Fatalf("expected export capped at 2 rows, got %d", len(exported))
	}
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		total, page, size int
		start, end        int
	}{
		{0, 1, 10, 0, 0},
		{3, 1, 2, 0, 2},
		{3, 2, 2, 2, 3},
		{3, 3, 2, 3, 3},
		{4, 2, 2, 2, 4},
		{5, 1 << 62, 4, 5, 5},
		{5, int(^uint(0) >> 1), 1 << 40, 5, 5},
	}
	for _, tt := range tests {
		start, end := pageBounds(tt.total, tt.page, tt.size)
		if start != tt.start || end != tt.end {
			t.Errorf("pageBounds(%d, %d, %d) = %d, %d; want %d, %d",
				tt.total, tt.page, tt.size, start, end, tt.start, tt.end)
		}
	}
}

func TestServiceRejectsOverlongRange(t *testing.T) {
	svc, src := newTestService(record("acme", "TKT-1", "2024-06-01", "2024-06-01 08:00:00", "T1"))
	filter := model.TicketFilter{Range: model.DateRange{
		From: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	_, err := svc.JobKPIs(context.Background(), manager("acme"), filter)
	if !errors.Is(err, ErrInvalidFilter) || !errors.Is(err, model.ErrRangeTooLong) {
		t.Fatalf("expected range rejection, got %v", err)
	}
	if src.loads != 0 {
		t.Fatalf("expected no fetch for rejected range, got %d", src.loads)
	}
}

func TestServicePhotosOnlyOnGrid(t *testing.T) {
	svc, src := newTestService(record("acme", "TKT-1", "2025-01-05", "2025-01-05 08:00:00", "T1"))
	src.photos = map[string]model.TicketPhotos{"TKT-1": {}}
	photos := src.photos["TKT-1"]
	photos.Set(model.PhotoTicket, "https://cdn.example/t1.jpg")
	src.photos["TKT-1"] = photos

	ctx := context.Background()
	filter := model.TicketFilter{Range: janRange()}
	if _, err := svc.JobKPIs(ctx, manager("acme"), filter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.EfficiencyOutliers(ctx, manager("acme"), filter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.photoLoads != 0 {
		t.Fatalf("expected reports to skip photos, got %d photo loads", src.photoLoads)
	}

	page, err := svc.Tickets(ctx, manager("acme"), filter, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.photoLoads != 1 || page.Items[0].Photos != photos {
		t.Fatalf("expected grid rows to carry photos, got %+v after %d loads", page.Items[0].Photos, src.photoLoads)
	}
}

func TestServiceTicketDetail(t *testing.T) {
	svc, _ := newTestService(record("beta", "TKT-9", "2025-01-05", "2025-01-05 08:00:00", "T1"))
	ctx := context.Background()

	if _, err := svc.TicketDetail(ctx, manager("acme"), "", "TKT-9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected other tenant's ticket to be not found, got %v", err)
	}
	detail, err := svc.TicketDetail(ctx, manager("beta"), "beta", "TKT-9")
	if err != nil || detail.Ticket.TicketNumber != "TKT-9" {
		t.Fatalf("expected detail, got %+v, %v", detail, err)
	}
	if _, err := svc.TicketDetail(ctx, manager("beta"), "beta", " "); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected invalid filter, got %v", err)
	}
}

func TestServiceOverview(t *testing.T) {
	svc, src := newTestService(
		record("acme", "TKT-1", "2025-01-05", "2025-01-05 08:00:00", "T1"),
		record("acme", "TKT-2", "2025-01-05", "2025-01-05 10:00:00", "T1"),
		record("acme", "TKT-3", "2025-01-05", "2025-01-05 08:00:00", "T2"),
		record("acme", "TKT-4", "2025-01-05", "2025-01-05 09:00:00", "T2"),
		record("acme", "TKT-5", "2025-01-01", "2025-01-03 09:00:00", "T3"),
	)
	overview, err := svc.Overview(context.Background(), manager("acme"), model.TicketFilter{Range: janRange()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.loads != 1 {
		t.Fatalf("expected one batch load, got %d", src.loads)
	}
	if overview.Job.TotalTickets != 5 || overview.Hauler.UniqueTrucks != 3 {
		t.Fatalf("unexpected kpis: %+v", overview)
	}
	if overview.LateSubmissions != 1 || overview.SlowTrucks != 1 {
		t.Fatalf("expected 1 late and 1 slow truck, got %d and %d", overview.LateSubmissions, overview.SlowTrucks)
	}
}

func TestServiceLookupsScope(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	lists, err := svc.Lookups(ctx, manager("acme"), "")
	if err != nil || len(lists.Jobs) != 1 {
		t.Fatalf("expected lookups for the only company, got %+v, %v", lists, err)
	}
	admin := model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
	if _, err := svc.Lookups(ctx, admin, "beta"); err != nil {
		t.Fatalf("expected admin to read any company, got %v", err)
	}
	if _, err := svc.Lookups(ctx, manager("acme"), "beta"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

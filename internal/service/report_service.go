package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"ticket-analytics/internal/analytics"
	"ticket-analytics/internal/config"
	"ticket-analytics/internal/model"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrMalformedTicket  = analytics.ErrMalformedTicket
)

type TicketSource interface {
	LoadTickets(ctx context.Context, scope model.Scope, rng model.DateRange) ([]model.TicketRecord, error)
	LoadPhotos(ctx context.Context, scope model.Scope, rng model.DateRange) (map[string]model.TicketPhotos, error)
	TicketByNumber(ctx context.Context, scope model.Scope, ticketNumber string) (*model.TicketDetail, error)
	Lookups(ctx context.Context, scope model.Scope) (model.LookupLists, error)
}

type ReportService struct {
	tickets TicketSource
	cfg     config.ReportConfig
	now     func() time.Time
}

func NewReportService(tickets TicketSource, cfg config.ReportConfig) *ReportService {
	return &ReportService{tickets: tickets, cfg: cfg, now: time.Now}
}

func (s *ReportService) JobKPIs(ctx context.Context, principal model.Principal, filter model.TicketFilter) (model.JobKPIs, error) {
	return runReport(ctx, s, principal, filter, analytics.JobKPIs)
}

func (s *ReportService) VendorSummary(ctx context.Context, principal model.Principal, filter model.TicketFilter) ([]model.VendorSummaryRow, error) {
	return runReport(ctx, s, principal, filter, analytics.VendorSummary)
}

func (s *ReportService) MaterialSummary(ctx context.Context, principal model.Principal, filter model.TicketFilter) ([]model.MaterialSummaryRow, error) {
	return runReport(ctx, s, principal, filter, analytics.MaterialSummary)
}

func (s *ReportService) MaterialKPIs(ctx context.Context, principal model.Principal, filter model.TicketFilter) (model.MaterialKPIs, error) {
	return runReport(ctx, s, principal, filter, analytics.MaterialKPIs)
}

func (s *ReportService) SitesSummary(ctx context.Context, principal model.Principal, filter model.TicketFilter) ([]model.SitesSummaryRow, error) {
	return runReport(ctx, s, principal, filter, analytics.SitesSummary)
}

func (s *ReportService) JobsSummary(ctx context.Context, principal model.Principal, filter model.TicketFilter) ([]model.JobsSummaryRow, error) {
	return runReport(ctx, s, principal, filter, analytics.JobsSummary)
}

func (s *ReportService) HaulerKPIs(ctx context.Context, principal model.Principal, filter model.TicketFilter) (model.HaulerKPIs, error) {
	return runReport(ctx, s, principal, filter, analytics.HaulerKPIs)
}

func (s *ReportService) BillableUnits(ctx context.Context, principal model.Principal, filter model.TicketFilter) ([]model.BillableUnitsRow, error) {
	return runReport(ctx, s, principal, filter, analytics.BillableUnitsSummary)
}

func (s *ReportService) CostCenter(ctx context.Context, principal model.Principal, filter model.TicketFilter) ([]model.CostCenterRow, error) {
	return runReport(ctx, s, principal, filter, analytics.CostCenterSummary)
}

func (s *ReportService) LateSubmissions(ctx context.Context, principal model.Principal, filter model.TicketFilter) ([]model.LateSubmissionRow, error) {
	if !principal.CanAudit() {
		return nil, ErrPermissionDenied
	}
	return runReport(ctx, s, principal, filter, analytics.LateSubmissions)
}

func (s *ReportService) EfficiencyOutliers(ctx context.Context, principal model.Principal, filter model.TicketFilter) ([]model.EfficiencyOutlierRow, error) {
	if !principal.CanAudit() {
		return nil, ErrPermissionDenied
	}
	return runReport(ctx, s, principal, filter, analytics.EfficiencyOutliers)
}

// Overview computes the three dashboards' KPIs and the forensic counts
// concurrently over a single batch.
func (s *ReportService) Overview(ctx context.Context, principal model.Principal, filter model.TicketFilter) (*model.Overview, error) {
	batch, normalized, err := s.batch(ctx, principal, filter)
	if err != nil {
		return nil, err
	}

	overview := &model.Overview{GeneratedFor: normalized.Range}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overview.Job = analytics.JobKPIs(batch)
		return gctx.Err()
	})
	g.Go(func() error {
		overview.Material = analytics.MaterialKPIs(batch)
		return gctx.Err()
	})
	g.Go(func() error {
		overview.Hauler = analytics.HaulerKPIs(batch)
		return gctx.Err()
	})
	if principal.CanAudit() {
		g.Go(func() error {
			overview.LateSubmissions = len(analytics.LateSubmissions(batch))
			return gctx.Err()
		})
		g.Go(func() error {
			slow := 0
			for _, row := range analytics.EfficiencyOutliers(batch) {
				if row.Status == model.StatusRed {
					slow++
				}
			}
			overview.SlowTrucks = slow
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

func (s *ReportService) Tickets(ctx context.Context, principal model.Principal, filter model.TicketFilter, page, pageSize int) (*model.PagedResult[model.TicketRecord], error) {
	batch, normalized, err := s.batch(ctx, principal, filter)
	if err != nil {
		return nil, err
	}
	analytics.SortForGrid(batch)

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}

	start, end := pageBounds(len(batch), page, pageSize)
	items, err := s.withPhotos(ctx, normalized, batch[start:end])
	if err != nil {
		return nil, err
	}

	return &model.PagedResult[model.TicketRecord]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    int64(len(batch)),
	}, nil
}

// pageBounds returns the slice bounds of a 1-based page. Pages past the end
// are empty.
func pageBounds(total, page, pageSize int) (int, int) {
	if page-1 >= (total+pageSize-1)/pageSize {
		return total, total
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

// ExportTickets returns the grid order capped at the configured export size.
func (s *ReportService) ExportTickets(ctx context.Context, principal model.Principal, filter model.TicketFilter) ([]model.TicketRecord, error) {
	batch, normalized, err := s.batch(ctx, principal, filter)
	if err != nil {
		return nil, err
	}
	analytics.SortForGrid(batch)
	if len(batch) > s.cfg.ExportMaxRows {
		batch = batch[:s.cfg.ExportMaxRows]
	}
	return s.withPhotos(ctx, normalized, batch)
}

// withPhotos fills the photo slots of tickets from the filter's company and
// range. Only the grid and export paths read photos.
func (s *ReportService) withPhotos(ctx context.Context, filter model.TicketFilter, tickets []model.TicketRecord) ([]model.TicketRecord, error) {
	if len(tickets) == 0 {
		return tickets, nil
	}
	photos, err := s.tickets.LoadPhotos(ctx, model.Scope{CompanyID: filter.CompanyID}, filter.Range)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if p, ok := photos[tickets[i].TicketNumber]; ok {
			tickets[i].Photos = p
		}
	}
	return tickets, nil
}

func (s *ReportService) TicketDetail(ctx context.Context, principal model.Principal, companyID, ticketNumber string) (*model.TicketDetail, error) {
	ticketNumber = strings.TrimSpace(ticketNumber)
	if ticketNumber == "" {
		return nil, fmt.Errorf("%w: ticket number is required", ErrInvalidFilter)
	}
	scope, err := s.resolveScope(principal, companyID)
	if err != nil {
		return nil, err
	}

	detail, err := s.tickets.TicketByNumber(ctx, scope, ticketNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return detail, nil
}

func (s *ReportService) Lookups(ctx context.Context, principal model.Principal, companyID string) (model.LookupLists, error) {
	scope, err := s.resolveScope(principal, companyID)
	if err != nil {
		return model.LookupLists{}, err
	}
	return s.tickets.Lookups(ctx, scope)
}

func runReport[T any](ctx context.Context, s *ReportService, principal model.Principal, filter model.TicketFilter, report func([]model.TicketRecord) T) (T, error) {
	batch, _, err := s.batch(ctx, principal, filter)
	if err != nil {
		var zero T
		return zero, err
	}
	return report(batch), nil
}

// batch resolves the tenant, normalizes the range, loads and validates the
// tenant's tickets, then applies the filter.
func (s *ReportService) batch(ctx context.Context, principal model.Principal, filter model.TicketFilter) ([]model.TicketRecord, model.TicketFilter, error) {
	scope, err := s.resolveScope(principal, filter.CompanyID)
	if err != nil {
		return nil, filter, err
	}
	filter.CompanyID = scope.CompanyID
	filter, err = filter.NormalizeRange(s.now(), s.cfg.DefaultRangeDays, s.cfg.MaxRangeDays)
	if err != nil {
		return nil, filter, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	if filter.Range.Inverted() {
		return make([]model.TicketRecord, 0), filter, nil
	}

	records, err := s.tickets.LoadTickets(ctx, scope, filter.Range)
	if err != nil {
		return nil, filter, err
	}
	if err := analytics.ValidateBatch(records); err != nil {
		return nil, filter, err
	}
	return analytics.FilterTickets(records, filter), filter, nil
}

// resolveScope picks the requested company, or the principal's only company
// when none was requested.
func (s *ReportService) resolveScope(principal model.Principal, companyID string) (model.Scope, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" && len(principal.CompanyIDs) == 1 {
		companyID = principal.CompanyIDs[0]
	}
	if companyID == "" {
		return model.Scope{}, fmt.Errorf("%w: companyId is required", ErrInvalidFilter)
	}
	if !principal.AllowsCompany(companyID) {
		return model.Scope{}, ErrPermissionDenied
	}
	return model.Scope{CompanyID: companyID}, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ticket-analytics/internal/model"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

type ticketRow struct {
	ID                 int64
	CompanyID          string
	TicketNumber       string
	TicketDate         time.Time
	CreatedAt          time.Time
	JobName            string
	Direction          string
	DestinationOrigin  string
	HaulingCompany     string
	Material           string
	TruckNumber        string
	TruckType          string
	DriverName         string
	SignedBy           string
	HaulerTicketNumber string
}

type photoRow struct {
	ID           int64
	TicketID     int64
	TicketNumber string
	PhotoType    string
	URL          string
	FileName     *string
}

const ticketColumns = `t.id, t.company_id, t.ticket_number, t.ticket_date, t.created_at,
	t.job_name, t.direction, t.destination_origin, t.hauling_company, t.material,
	t.truck_number, t.truck_type, t.driver_name, t.signed_by, t.hauler_ticket_number`

const photoColumns = "p.id, p.ticket_id, t.ticket_number, p.photo_type, p.url, p.file_name"

// LoadTickets fetches the tenant's tickets whose ticket date falls in rng.
// Field filters are left to the engine; photos are loaded separately.
func (r *TicketRepository) LoadTickets(ctx context.Context, scope model.Scope, rng model.DateRange) ([]model.TicketRecord, error) {
	var rows []ticketRow
	query := r.db.WithContext(ctx).
		Table("ticket_rows t").
		Select(ticketColumns)
	query = applyRange(applyCompanyScope(query, scope), rng)
	if err := query.Order("t.ticket_date DESC, t.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}

	result := make([]model.TicketRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toRecord())
	}
	return result, nil
}

// LoadPhotos returns the photo slots of every ticket in scope and rng, keyed
// by ticket number. Tickets are selected by join, not by an id list.
func (r *TicketRepository) LoadPhotos(ctx context.Context, scope model.Scope, rng model.DateRange) (map[string]model.TicketPhotos, error) {
	var rows []photoRow
	if err := photosInRange(r.db.WithContext(ctx), scope, rng).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load photos: %w", err)
	}

	result := make(map[string]model.TicketPhotos)
	for _, row := range rows {
		photos := result[row.TicketNumber]
		photos.Set(model.PhotoType(row.PhotoType), row.URL)
		result[row.TicketNumber] = photos
	}
	return result, nil
}

func photosInRange(db *gorm.DB, scope model.Scope, rng model.DateRange) *gorm.DB {
	query := db.Table("ticket_photos p").
		Select(photoColumns).
		Joins("JOIN ticket_rows t ON t.id = p.ticket_id")
	return applyRange(applyCompanyScope(query, scope), rng).Order("p.id")
}

// TicketByNumber returns gorm.ErrRecordNotFound when the ticket does not exist
// inside the scope.
func (r *TicketRepository) TicketByNumber(ctx context.Context, scope model.Scope, ticketNumber string) (*model.TicketDetail, error) {
	var rows []ticketRow
	query := r.db.WithContext(ctx).
		Table("ticket_rows t").
		Select(ticketColumns).
		Where("t.ticket_number = ?", ticketNumber).
		Limit(1)
	query = applyCompanyScope(query, scope)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load ticket %s: %w", ticketNumber, err)
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	row := rows[0]
	var photos []photoRow
	err := r.db.WithContext(ctx).
		Table("ticket_photos p").
		Select(photoColumns).
		Joins("JOIN ticket_rows t ON t.id = p.ticket_id").
		Where("p.ticket_id = ?", row.ID).
		Order("p.id").
		Scan(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("load photos of %s: %w", ticketNumber, err)
	}

	detail := &model.TicketDetail{ID: row.ID, Ticket: row.toRecord(), Photos: make([]model.Photo, 0)}
	for _, p := range photos {
		detail.Ticket.Photos.Set(model.PhotoType(p.PhotoType), p.URL)
		detail.Photos = append(detail.Photos, model.Photo{
			ID:       p.ID,
			Type:     model.PhotoType(p.PhotoType),
			URL:      p.URL,
			FileName: p.FileName,
		})
	}
	return detail, nil
}

// Lookups lists the distinct display names a tenant's tickets carry.
func (r *TicketRepository) Lookups(ctx context.Context, scope model.Scope) (model.LookupLists, error) {
	var (
		lists model.LookupLists
		err   error
	)
	targets := []struct {
		column string
		dest   *[]string
	}{
		{"job_name", &lists.Jobs},
		{"material", &lists.Materials},
		{"hauling_company", &lists.Haulers},
		{"truck_type", &lists.TruckTypes},
		{"destination_origin", &lists.ExternalSites},
	}
	for _, target := range targets {
		*target.dest, err = r.distinctNames(ctx, scope, target.column)
		if err != nil {
			return model.LookupLists{}, err
		}
	}
	return lists, nil
}

func (r *TicketRepository) distinctNames(ctx context.Context, scope model.Scope, column string) ([]string, error) {
	names := make([]string, 0)
	query := r.db.WithContext(ctx).
		Table("ticket_rows t").
		Distinct("t."+column).
		Where("t."+column+" <> ''").
		Order("t." + column)
	query = applyCompanyScope(query, scope)
	if err := query.Pluck("t."+column, &names).Error; err != nil {
		return nil, fmt.Errorf("lookup %s: %w", column, err)
	}
	return names, nil
}

func (row ticketRow) toRecord() model.TicketRecord {
	return model.TicketRecord{
		CompanyID:          row.CompanyID,
		TicketNumber:       row.TicketNumber,
		TicketDate:         row.TicketDate,
		CreatedAt:          row.CreatedAt,
		JobName:            row.JobName,
		Direction:          model.Direction(row.Direction),
		DestinationOrigin:  row.DestinationOrigin,
		HaulingCompany:     row.HaulingCompany,
		Material:           row.Material,
		TruckNumber:        row.TruckNumber,
		TruckType:          row.TruckType,
		DriverName:         row.DriverName,
		SignedBy:           row.SignedBy,
		HaulerTicketNumber: model.ParseHaulerTicketRef(row.HaulerTicketNumber),
	}
}

func applyRange(query *gorm.DB, rng model.DateRange) *gorm.DB {
	if !rng.From.IsZero() {
		query = query.Where("t.ticket_date >= ?", rng.From.Format(model.DateLayout))
	}
	if !rng.To.IsZero() {
		query = query.Where("t.ticket_date <= ?", rng.To.Format(model.DateLayout))
	}
	return query
}

func applyCompanyScope(query *gorm.DB, scope model.Scope) *gorm.DB {
	if scope.CompanyID == "" {
		return query.Where("1 = 0")
	}
	return query.Where("t.company_id = ?", scope.CompanyID)
}

package model

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

type Direction string

const (
	DirectionImport Direction = "Import"
	DirectionExport Direction = "Export"
)

func (d Direction) Valid() bool {
	return d == DirectionImport || d == DirectionExport
}

type HaulerTicketKind int

const (
	HaulerTicketRecorded HaulerTicketKind = iota
	HaulerTicketNotApplicable
	HaulerTicketMissing
)

const (
	haulerTicketNA      = "N/A"
	haulerTicketMissing = "MISSING"
)

// HaulerTicketRef is the vendor-side paper ticket reference. N/A means no
// physical ticket is expected, MISSING means one was expected but not captured.
type HaulerTicketRef struct {
	Kind   HaulerTicketKind
	Number string
}

func ParseHaulerTicketRef(raw string) HaulerTicketRef {
	switch strings.TrimSpace(raw) {
	case haulerTicketNA:
		return HaulerTicketRef{Kind: HaulerTicketNotApplicable}
	case haulerTicketMissing, "":
		return HaulerTicketRef{Kind: HaulerTicketMissing}
	default:
		return HaulerTicketRef{Kind: HaulerTicketRecorded, Number: strings.TrimSpace(raw)}
	}
}

func (r HaulerTicketRef) String() string {
	switch r.Kind {
	case HaulerTicketNotApplicable:
		return haulerTicketNA
	case HaulerTicketMissing:
		return haulerTicketMissing
	default:
		return r.Number
	}
}

func (r HaulerTicketRef) HasPhysicalTicket() bool {
	return r.Kind != HaulerTicketNotApplicable
}

func (r HaulerTicketRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *HaulerTicketRef) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ParseHaulerTicketRef(raw)
	return nil
}

type PhotoType string

const (
	PhotoTicket   PhotoType = "Ticket"
	PhotoTruck    PhotoType = "Truck"
	PhotoTruck2   PhotoType = "Truck2"
	PhotoAsbestos PhotoType = "Asbestos"
	PhotoScrap    PhotoType = "Scrap"
)

type TicketPhotos struct {
	Ticket     *string `json:"photoTicket"`
	TruckFront *string `json:"photoTruck1"`
	TruckRear  *string `json:"photoTruck2"`
	Asbestos   *string `json:"photoAsbestos"`
	Scrap      *string `json:"photoScrap"`
}

// Set places url into the slot for photoType. Unknown types are ignored.
func (p *TicketPhotos) Set(photoType PhotoType, url string) {
	switch photoType {
	case PhotoTicket:
		p.Ticket = &url
	case PhotoTruck:
		p.TruckFront = &url
	case PhotoTruck2:
		p.TruckRear = &url
	case PhotoAsbestos:
		p.Asbestos = &url
	case PhotoScrap:
		p.Scrap = &url
	}
}

// TicketRecord is one hauling event with every reference already resolved to
// its display name. TicketDate is a calendar date at midnight; CreatedAt is
// the wall-clock entry time in the same location.
type TicketRecord struct {
	CompanyID          string
	TicketNumber       string
	TicketDate         time.Time
	CreatedAt          time.Time
	JobName            string
	Direction          Direction
	DestinationOrigin  string
	HaulingCompany     string
	Material           string
	TruckNumber        string
	TruckType          string
	DriverName         string
	SignedBy           string
	HaulerTicketNumber HaulerTicketRef
	Photos             TicketPhotos
}

// TicketDay is the ticket date formatted as YYYY-MM-DD.
func (t TicketRecord) TicketDay() string {
	return t.TicketDate.Format(DateLayout)
}

type ticketRowJSON struct {
	TicketNumber       string          `json:"ticketNumber"`
	TicketDate         string          `json:"ticketDate"`
	CreatedAt          string          `json:"createdAt"`
	JobName            string          `json:"jobName"`
	Direction          Direction       `json:"direction"`
	DestinationOrigin  string          `json:"destinationOrigin"`
	HaulingCompany     string          `json:"haulingCompany"`
	Material           string          `json:"material"`
	TruckNumber        string          `json:"truckNumber"`
	TruckType          string          `json:"truckType"`
	DriverName         string          `json:"driverName"`
	HaulerTicketNumber HaulerTicketRef `json:"haulerTicketNumber"`
	HasPhysicalTicket  bool            `json:"hasPhysicalTicket"`
	SignedBy           string          `json:"signedBy"`
	TicketPhotos
}

func (t TicketRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.row())
}

func (t TicketRecord) row() ticketRowJSON {
	return ticketRowJSON{
		TicketNumber:       t.TicketNumber,
		TicketDate:         t.TicketDay(),
		CreatedAt:          t.CreatedAt.Format(DateTimeLayout),
		JobName:            t.JobName,
		Direction:          t.Direction,
		DestinationOrigin:  t.DestinationOrigin,
		HaulingCompany:     t.HaulingCompany,
		Material:           t.Material,
		TruckNumber:        t.TruckNumber,
		TruckType:          t.TruckType,
		DriverName:         t.DriverName,
		HaulerTicketNumber: t.HaulerTicketNumber,
		HasPhysicalTicket:  t.HaulerTicketNumber.HasPhysicalTicket(),
		SignedBy:           t.SignedBy,
		TicketPhotos:       t.Photos,
	}
}

type Photo struct {
	ID       int64     `json:"id"`
	Type     PhotoType `json:"type"`
	URL      string    `json:"url"`
	FileName *string   `json:"fileName,omitempty"`
}

type TicketDetail struct {
	ID     int64
	Ticket TicketRecord
	Photos []Photo
}

func (d TicketDetail) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID int64 `json:"id"`
		ticketRowJSON
		CompanyID string  `json:"companyId"`
		Photos    []Photo `json:"photos"`
	}{
		ID:            d.ID,
		ticketRowJSON: d.Ticket.row(),
		CompanyID:     d.Ticket.CompanyID,
		Photos:        d.Photos,
	})
}

type PagedResult[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

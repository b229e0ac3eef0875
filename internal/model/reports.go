package model

// EmptyPlaceholder stands in for string KPI fields computed over an empty batch.
const EmptyPlaceholder = "—"

type JobKPIs struct {
	TotalTickets int    `json:"totalTickets"`
	FlowBalance  string `json:"flowBalance"`
	LastActive   string `json:"lastActive"`
}

type MaterialKPIs struct {
	TotalTickets   int    `json:"totalTickets"`
	TopSource      string `json:"topSource"`
	TopDestination string `json:"topDestination"`
	ActiveJobs     int    `json:"activeJobs"`
}

type HaulerKPIs struct {
	TotalTickets int `json:"totalTickets"`
	UniqueTrucks int `json:"uniqueTrucks"`
	ActiveJobs   int `json:"activeJobs"`
}

type VendorSummaryRow struct {
	CompanyName  string `json:"companyName"`
	TruckType    string `json:"truckType"`
	TotalTickets int    `json:"totalTickets"`
}

type MaterialSummaryRow struct {
	MaterialName string `json:"materialName"`
	TotalTickets int    `json:"totalTickets"`
}

type SitesSummaryRow struct {
	ExternalSiteName string    `json:"externalSiteName"`
	Direction        Direction `json:"direction"`
	TotalTickets     int       `json:"totalTickets"`
}

type JobsSummaryRow struct {
	JobName      string    `json:"jobName"`
	Direction    Direction `json:"direction"`
	TotalTickets int       `json:"totalTickets"`
}

type BillableUnitsRow struct {
	TruckType    string `json:"truckType"`
	TotalTickets int    `json:"totalTickets"`
}

type CostCenterRow struct {
	JobName      string `json:"jobName"`
	TotalTickets int    `json:"totalTickets"`
}

type LateSubmissionRow struct {
	TicketNumber string `json:"ticketNumber"`
	TicketDate   string `json:"ticketDate"`
	SystemDate   string `json:"systemDate"`
	LagTime      string `json:"lagTime"`
	SignedBy     string `json:"signedBy"`
	JobName      string `json:"jobName"`
	Hauler       string `json:"hauler"`
}

type OutlierStatus string

const (
	StatusGreen OutlierStatus = "green"
	StatusRed   OutlierStatus = "red"
	StatusGrey  OutlierStatus = "grey"
)

type EfficiencyOutlierRow struct {
	Date           string        `json:"date"`
	JobName        string        `json:"jobName"`
	Route          string        `json:"route"`
	TruckNumber    string        `json:"truckNumber"`
	HaulerName     *string       `json:"haulerName,omitempty"`
	TotalTickets   int           `json:"totalTickets"`
	WorkDuration   string        `json:"workDuration"`
	MyAvgCycle     int           `json:"myAvgCycle"`
	FleetBenchmark int           `json:"fleetBenchmark"`
	Status         OutlierStatus `json:"status"`

	// Load-count view kept alongside the cycle-time view.
	FleetAvgLoads   float64 `json:"fleetAvgLoads"`
	ThisTruckLoads  int     `json:"thisTruckLoads"`
	FirstTicketTime string  `json:"firstTicketTime"`
	LastTicketTime  string  `json:"lastTicketTime"`
	ImpliedHours    float64 `json:"impliedHours"`
	LoadsPerHour    float64 `json:"loadsPerHour"`
}

type LookupLists struct {
	Jobs          []string `json:"jobs"`
	Materials     []string `json:"materials"`
	Haulers       []string `json:"haulers"`
	TruckTypes    []string `json:"truckTypes"`
	ExternalSites []string `json:"externalSites"`
}

type Overview struct {
	Job             JobKPIs      `json:"job"`
	Material        MaterialKPIs `json:"material"`
	Hauler          HaulerKPIs   `json:"hauler"`
	LateSubmissions int          `json:"lateSubmissions"`
	SlowTrucks      int          `json:"slowTrucks"`
	GeneratedFor    DateRange    `json:"generatedFor"`
}

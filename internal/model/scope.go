package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleAuditor Role = "AUDITOR"
	RoleViewer  Role = "VIEWER"
)

type Principal struct {
	UserID     uuid.UUID
	Role       Role
	CompanyIDs []string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAudit reports whether the principal may see the forensic reports.
func (p Principal) CanAudit() bool {
	return p.Role == RoleAdmin || p.Role == RoleAuditor || p.Role == RoleManager
}

func (p Principal) AllowsCompany(companyID string) bool {
	if companyID == "" {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	for _, id := range p.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// Scope pins every query of one request to a single tenant.
type Scope struct {
	CompanyID string
}

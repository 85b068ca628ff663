package audit

import "fmt"

// AdminEvent records an administrative mutation (user, company,
// department or demographic field create/update/delete)
type AdminEvent struct {
	ActorID      string
	CompanyID    string
	ClientIP     string
	Entity       string // "user", "company", "department", "demographic_field"
	EntityID     string
	Action       string // "create", "update", "delete", "import"
	Success      bool
	ErrorMessage string
}

func (e AdminEvent) MessageID() string {
	return e.Entity + "." + e.Action
}

func (e AdminEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %sd %s %s", e.ActorID, e.Action, e.Entity, e.EntityID)
	}
	msg := fmt.Sprintf("%s failed to %s %s %s", e.ActorID, e.Action, e.Entity, e.EntityID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AdminEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e AdminEvent) Facility() int {
	return FacilityAuth
}

func (e AdminEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"entity": e.Entity,
			"id":     e.EntityID,
		},
		SDIDAction: {
			"operation": e.Action,
			"actor":     e.ActorID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.CompanyID != "" {
		sd[SDIDTenant] = map[string]string{"company": e.CompanyID}
	}
	return sd
}

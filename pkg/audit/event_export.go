package audit

import "fmt"

// ExportEvent records a data export (CSV response download)
type ExportEvent struct {
	ActorID   string
	CompanyID string
	ClientIP  string
	SurveyID  string
	Rows      int
}

func (e ExportEvent) MessageID() string {
	return "export"
}

func (e ExportEvent) Message() string {
	return fmt.Sprintf("%s exported %d responses from survey %s", e.ActorID, e.Rows, e.SurveyID)
}

func (e ExportEvent) Severity() Severity {
	return SeverityNotice
}

func (e ExportEvent) Facility() int {
	return FacilityAuth
}

func (e ExportEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"survey": e.SurveyID,
			"rows":   fmt.Sprintf("%d", e.Rows),
		},
		SDIDAction: {
			"operation": "export",
			"actor":     e.ActorID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDTenant: {
			"company": e.CompanyID,
		},
	}
}

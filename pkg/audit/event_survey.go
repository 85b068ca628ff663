package audit

import "fmt"

// SurveyEvent records a survey or microclimate lifecycle action
type SurveyEvent struct {
	ActorID   string
	CompanyID string
	ClientIP  string
	Kind      string // "survey" or "microclimate"
	SurveyID  string
	Action    string // "create", "update", "delete", "launch", "close"
}

func (e SurveyEvent) MessageID() string {
	return e.Kind + "." + e.Action
}

func (e SurveyEvent) Message() string {
	return fmt.Sprintf("%s performed %s on %s %s", e.ActorID, e.Action, e.Kind, e.SurveyID)
}

func (e SurveyEvent) Severity() Severity {
	return SeverityInfo
}

func (e SurveyEvent) Facility() int {
	return FacilityUser
}

func (e SurveyEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"kind": e.Kind,
			"id":   e.SurveyID,
		},
		SDIDAction: {
			"operation": e.Action,
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

package audit

import "fmt"

// ResponseEvent records a survey response submission. Flagged is set when
// the submission tripped the injection heuristics.
type ResponseEvent struct {
	CompanyID  string
	ClientIP   string
	SurveyID   string
	ResponseID string
	Flagged    bool
}

func (e ResponseEvent) MessageID() string {
	if e.Flagged {
		return "response.flagged"
	}
	return "response.submit"
}

func (e ResponseEvent) Message() string {
	if e.Flagged {
		return fmt.Sprintf("response %s to survey %s flagged by injection heuristics", e.ResponseID, e.SurveyID)
	}
	return fmt.Sprintf("response %s submitted to survey %s", e.ResponseID, e.SurveyID)
}

func (e ResponseEvent) Severity() Severity {
	if e.Flagged {
		return SeverityWarning
	}
	return SeverityInfo
}

func (e ResponseEvent) Facility() int {
	if e.Flagged {
		return FacilityAuth
	}
	return FacilityUser
}

func (e ResponseEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"survey":   e.SurveyID,
			"response": e.ResponseID,
			"flagged":  fmt.Sprintf("%t", e.Flagged),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDTenant: {
			"company": e.CompanyID,
		},
	}
}

package audit

import "fmt"

// AuthenticateEvent records a login or registration attempt
type AuthenticateEvent struct {
	Email        string
	UserID       string
	CompanyID    string
	ClientIP     string
	Action       string // "login" or "register"
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s succeeded for %s", e.Action, e.Email)
	}
	msg := fmt.Sprintf("%s failed for %s", e.Action, e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"action": e.Action,
			"email":  e.Email,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.UserID != "" {
		sd[SDIDAuth]["user"] = e.UserID
	}
	if e.CompanyID != "" {
		sd[SDIDTenant] = map[string]string{"company": e.CompanyID}
	}
	return sd
}

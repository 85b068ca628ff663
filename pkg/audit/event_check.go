package audit

import "fmt"

// CheckEvent records a permission check, typically a denial
type CheckEvent struct {
	ActorID    string
	ClientIP   string
	Permission string
	Resource   string
	Allowed    bool
}

func (e CheckEvent) MessageID() string {
	return "check"
}

func (e CheckEvent) Message() string {
	if e.Allowed {
		return fmt.Sprintf("%s permitted %s on %s", e.ActorID, e.Permission, e.Resource)
	}
	return fmt.Sprintf("%s denied %s on %s", e.ActorID, e.Permission, e.Resource)
}

func (e CheckEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e CheckEvent) Facility() int {
	return FacilityAuth
}

func (e CheckEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAction: {
			"permission": e.Permission,
			"actor":      e.ActorID,
			"allowed":    fmt.Sprintf("%t", e.Allowed),
		},
		SDIDSubject: {
			"resource": e.Resource,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}

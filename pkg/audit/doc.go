// Package audit provides audit logging for OrgPulse operations.
//
// Events are written in RFC5424 syslog format to stdout and optionally
// persisted to a dedicated database (AUDIT_DATABASE_URL).
//
// # Event Types
//
//   - AuthenticateEvent: login and registration attempts
//   - AdminEvent: user/company/department/demographic mutations
//   - SurveyEvent: survey and microclimate lifecycle actions
//   - ResponseEvent: response submissions, including heuristic flags
//   - CheckEvent: permission checks and denials
//   - ExportEvent: CSV response exports
//
// # Usage
//
//	audit.Log(audit.CheckEvent{ActorID: id, Permission: "export_data", Allowed: false})
package audit

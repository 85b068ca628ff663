package audit

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// <PRI>1 TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG
var syslogLineRgx = regexp.MustCompile(
	`^<(\d+)>1 (\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z) (\S+) orgpulse (\d+) (\S+) (\S.*?) (.+)\n$`)

func TestLogRFC5424Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	logger.Log(AuthenticateEvent{
		Email:    "user@example.com",
		UserID:   "u-1",
		ClientIP: "10.0.0.9",
		Action:   "login",
		Success:  true,
	})

	line := buf.String()
	m := syslogLineRgx.FindStringSubmatch(line)
	assert.NotNil(t, m, "line %q does not match RFC5424 shape", line)

	// authpriv(10)*8 + info(6) = 86
	assert.Equal(t, "86", m[1])
	assert.Equal(t, "authn", m[5])
	assert.Contains(t, line, `[auth@32473`)
	assert.Contains(t, line, `email="user@example.com"`)
	assert.Contains(t, line, `ip="10.0.0.9"`)
	assert.Contains(t, line, "login succeeded for user@example.com")
}

func TestLogFailureSeverity(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	logger.Log(AuthenticateEvent{
		Email:        "user@example.com",
		ClientIP:     "10.0.0.9",
		Action:       "login",
		Success:      false,
		ErrorMessage: "invalid credentials",
	})

	// authpriv(10)*8 + warning(4) = 84
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("<84>1 ")), buf.String())
	assert.Contains(t, buf.String(), "login failed for user@example.com: invalid credentials")
}

func TestCheckEventDenied(t *testing.T) {
	e := CheckEvent{
		ActorID:    "u-2",
		ClientIP:   "10.0.0.1",
		Permission: "manage_users",
		Resource:   "/api/admin/users",
		Allowed:    false,
	}

	assert.Equal(t, "check", e.MessageID())
	assert.Equal(t, SeverityWarning, e.Severity())
	assert.Equal(t, FacilityAuth, e.Facility())
	assert.Equal(t, "u-2 denied manage_users on /api/admin/users", e.Message())
	assert.Equal(t, "false", e.StructuredData()[SDIDAction]["allowed"])
}

func TestResponseEventFlagged(t *testing.T) {
	plain := ResponseEvent{SurveyID: "s-1", ResponseID: "r-1"}
	assert.Equal(t, "response.submit", plain.MessageID())
	assert.Equal(t, SeverityInfo, plain.Severity())
	assert.Equal(t, FacilityUser, plain.Facility())

	flagged := ResponseEvent{SurveyID: "s-1", ResponseID: "r-1", Flagged: true}
	assert.Equal(t, "response.flagged", flagged.MessageID())
	assert.Equal(t, SeverityWarning, flagged.Severity())
	assert.Equal(t, FacilityAuth, flagged.Facility())
	assert.Contains(t, flagged.Message(), "flagged by injection heuristics")
}

func TestFormatStructuredData(t *testing.T) {
	assert.Equal(t, "", formatStructuredData(nil))

	sd := map[string]map[string]string{
		SDIDClient: {"ip": `10.0.0.1`},
	}
	assert.Equal(t, `[client@32473 ip="10.0.0.1"]`, formatStructuredData(sd))
}

func TestEscapeSDValue(t *testing.T) {
	assert.Equal(t, `"plain"`, escapeSDValue("plain"))
	assert.Equal(t, `"a\"b"`, escapeSDValue(`a"b`))
	assert.Equal(t, `"a\\b"`, escapeSDValue(`a\b`))
	assert.Equal(t, `"a\]b"`, escapeSDValue("a]b"))
}

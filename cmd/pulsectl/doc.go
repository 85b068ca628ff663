// Package main provides pulsectl, the CLI for the OrgPulse
// organizational climate server.
//
// OrgPulse is a multi-tenant survey backend: companies run longitudinal
// climate surveys and short-lived microclimate pulses against their
// employees, with role-based access control and audit logging.
//
// # Architecture
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: storage interfaces and GORM implementations
//   - pkg/survey: template mapping and answer validation
//   - pkg/sanitize: input stripping and injection heuristics
//   - pkg/rbac: roles and permissions
//   - pkg/model: database models
//   - pkg/audit: RFC 5424 audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	pulsectl db migrate
//
//	# Create the first super admin
//	pulsectl account create-admin --email admin@example.com
//
//	# Load the survey template library
//	pulsectl template load /etc/orgpulse/templates
//
//	# Start the server
//	pulsectl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - AUDIT_DATABASE_URL: PostgreSQL connection string for audit storage
//     (defaults to DATABASE_URL)
//   - ORGPULSE_SESSION_KEY: Base64-encoded HMAC key for session tokens
//   - ORGPULSE_CONFIG_PATH: Config file path (default /etc/orgpulse/config/orgpulse.yml)
//   - ORGPULSE_LOG_LEVEL: Log level (debug enables SQL logging)
//   - PORT: Server port (default: 8000)
package main

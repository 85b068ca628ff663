// Package model defines the database models for OrgPulse.
//
// This package contains GORM models that map to the PostgreSQL schema
// managed by the migrations under db/migrations.
//
// # Core Models
//
//   - Company: tenant organizations
//   - Department: organizational units (tree via parent_id)
//   - User: authenticated principals with a role and optional department
//   - DemographicField: per-company custom demographic attributes
//   - SurveyTemplate / TemplateQuestion: the reusable template library
//   - Survey / SurveyQuestion: longitudinal surveys
//   - Response / Answer: survey submissions
//   - Microclimate / MicroclimateQuestion / MicroclimateAnswer:
//     short-lived real-time pulse surveys
//   - Invitation: single-use survey response tokens
//
// Every tenant-scoped row carries company_id; stores restrict queries to
// the caller's company except for super admins.
package model

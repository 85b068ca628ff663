// Package rbac implements role-based access control as a static
// role-to-permission lookup table.
//
// The table is a total function over the five known roles; unknown roles
// are granted nothing. Company scoping is not handled here - stores and
// endpoints restrict queries to the caller's company separately.
package rbac

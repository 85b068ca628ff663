// Package db provides the GORM/PostgreSQL connection helper shared by
// the server and the pulsectl commands.
package db

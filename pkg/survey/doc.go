// Package survey implements the adaptive question engine: the static
// mapping tables that turn template library entries into surveys, and
// the conditional validation rules for binary (yes/no) questions.
//
// All functions here are pure; persistence happens in the stores.
package survey

// Package sanitize provides regex-based input filters for survey free
// text: HTML tag stripping and heuristic SQL/NoSQL injection detection.
//
// The detection is heuristic. It provides no security guarantee and is
// used only to flag submissions in the audit log; the persistence layer
// always uses parameterized queries regardless.
package sanitize

package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/orgpulse/orgpulse/pkg/validation"
)

// envelope is the wire shape of every JSON response
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondWithData(w http.ResponseWriter, code int, data interface{}) {
	respondWithJSON(w, code, envelope{Success: true, Data: data})
}

func respondWithMessage(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, envelope{Success: true, Message: message})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]interface{}{"success": false, "message": message})
}

func respondWithIssues(w http.ResponseWriter, message string, issues validation.Issues) {
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"message": message,
		"issues":  issues,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// listParams extracts page/limit pagination from the query string.
// Pages are 1-based; limit is clamped to max.
func listParams(r *http.Request, max int) (limit, offset int) {
	limit = 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if max > 0 && limit > max {
		limit = max
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	return limit, (page - 1) * limit
}

// Choice options are stored pipe-delimited in a single column.
func joinOptions(options []string) string {
	return strings.Join(options, "|")
}

func splitOptions(options string) []string {
	if options == "" {
		return nil
	}
	return strings.Split(options, "|")
}

// pagedData wraps list results with their total count
func pagedData(key string, items interface{}, total int) map[string]interface{} {
	return map[string]interface{}{
		key:     items,
		"total": total,
	}
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"libtrack/internal/entity"
)

func (s *Server) respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, code int, msg string) {
	s.respondJSON(w, code, map[string]string{"error": msg})
}

func (s *Server) respondStatus(w http.ResponseWriter, status string) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (s *Server) respondInternal(w http.ResponseWriter, action string, err error) {
	s.logger.Error(action, "err", err)
	s.respondError(w, http.StatusInternalServerError, "Internal server error")
}

// respondRecords serializes a record list, making sure an empty result is an
// empty JSON array rather than null.
func (s *Server) respondRecords(w http.ResponseWriter, records []entity.BorrowRecord) {
	if records == nil {
		records = []entity.BorrowRecord{}
	}
	s.respondJSON(w, http.StatusOK, records)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// queryID parses a positive integer query parameter.
func queryID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

package fakeapi

import (
	"net/http"
	"time"

	patronus "github.com/patronus-sdwan/patronus-go"
)

func (s *Server) queryMetrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("metric_name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "metric_name is required")
		return
	}

	start, err := time.Parse(time.RFC3339, q.Get("start_time"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_time")
		return
	}
	end, err := time.Parse(time.RFC3339, q.Get("end_time"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_time")
		return
	}

	s.mu.Lock()
	stored := s.series[name]
	s.mu.Unlock()

	data := make([]patronus.MetricData, 0, len(stored))
	for _, d := range stored {
		if d.Timestamp.Before(start) || d.Timestamp.After(end) {
			continue
		}
		data = append(data, d)
	}

	writeJSON(w, http.StatusOK, patronus.Metrics{MetricName: name, Data: data})
}

package patronus

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// MetricsService queries time-series metrics. The metrics surface is
// read-only; there is no CRUD here.
type MetricsService struct {
	client *Client
}

// MetricsQuery selects one named series over a time window. Extra entries
// become additional query parameters.
type MetricsQuery struct {
	MetricName string    `validate:"required"`
	StartTime  time.Time `validate:"required"`
	EndTime    time.Time `validate:"required"`
	Extra      map[string]string
}

func (s *MetricsService) Query(ctx context.Context, q MetricsQuery) (*Metrics, error) {
	if err := validateInput(q); err != nil {
		return nil, err
	}

	v := url.Values{}
	v.Set("metric_name", q.MetricName)
	v.Set("start_time", q.StartTime.UTC().Format(time.RFC3339))
	v.Set("end_time", q.EndTime.UTC().Format(time.RFC3339))
	for k, val := range q.Extra {
		v.Set(k, val)
	}

	var metrics Metrics
	if err := s.client.do(ctx, http.MethodGet, "/api/v1/metrics?"+v.Encode(), nil, http.StatusOK, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// Package types contains common types used across the application
package types

import "encoding/json"

// Metric is an optional measurement such as WER or WPM. The zero value is
// absent. Absence means "not computable for this request", never a failure:
// every consumer must branch on Valid instead of treating zero as a reading.
type Metric struct {
	Value float64
	Valid bool
}

// MetricOf returns a present Metric carrying v.
func MetricOf(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// AbsentMetric returns the absent Metric.
func AbsentMetric() Metric {
	return Metric{}
}

// MarshalJSON renders an absent metric as JSON null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts a number or null.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Metric{Value: v, Valid: true}
	return nil
}

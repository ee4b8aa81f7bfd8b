package response

import "time"

type AvailabilityResponse struct {
	SubjectID       string   `json:"subject_id"`
	SubjectType     string   `json:"subject_type"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           int64    `json:"price"`
	StartTimes      []string `json:"start_times"`
}

// FormatStartTimes renders feasible starts as RFC3339 strings, never nil
// so an empty day serializes as [].
func FormatStartTimes(starts []time.Time) []string {
	out := make([]string, len(starts))
	for i, s := range starts {
		out[i] = s.Format(time.RFC3339)
	}
	return out
}

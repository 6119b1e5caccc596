package question

// AvailabilityReport maps subject → per-unit question counts, for the
// test-builder screen.
type AvailabilityReport map[string]*SubjectAvailability

type SubjectAvailability struct {
	Units      map[string]int `json:"units"`
	TotalCount int            `json:"total_count"`
}

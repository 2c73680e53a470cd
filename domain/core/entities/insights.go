package entities

// AvaInsights is the analytics record derived from a week's cards and sessions
type AvaInsights struct {
	TotalMinutes    int      `json:"totalMinutes"`
	DoneCount       int      `json:"doneCount"`
	FocusScore      int      `json:"focusScore"`
	Recommendations []string `json:"recommendations"`
}

// Clone returns a deep copy so cached snapshots cannot be mutated by callers
func (a AvaInsights) Clone() AvaInsights {
	cp := a
	if a.Recommendations != nil {
		cp.Recommendations = append([]string(nil), a.Recommendations...)
	}
	return cp
}

package entities

// Week is a user-owned 7-day planning window identified by its start date
type Week struct {
	ID       string `json:"id" yaml:"id"`
	UserID   string `json:"userId" yaml:"userId"`
	StartISO string `json:"startISO" yaml:"startISO"`
}

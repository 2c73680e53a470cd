package entities

import (
	"time"

	"forzeit/pkg/utils"
)

// Session is a recorded interval of work. Timestamps are kept as received
// so that malformed values can be detected when durations are computed.
type Session struct {
	ID        string `json:"id" yaml:"id"`
	UserID    string `json:"userId" yaml:"userId"`
	StartedAt string `json:"startedAt" yaml:"startedAt"`
	EndedAt   string `json:"endedAt" yaml:"endedAt"`
}

// Clone returns a copy of the session
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// Start parses the start timestamp
func (s *Session) Start() (time.Time, error) {
	return utils.ParseISO(s.StartedAt)
}

// End parses the end timestamp
func (s *Session) End() (time.Time, error) {
	return utils.ParseISO(s.EndedAt)
}

package entities

import (
	"time"

	"forzeit/domain/core/valueobjects"
)

// Card is a task belonging to a week
type Card struct {
	ID        string                  `json:"id" yaml:"id"`
	UserID    string                  `json:"userId" yaml:"userId"`
	WeekID    string                  `json:"weekId" yaml:"weekId"`
	Title     string                  `json:"title" yaml:"title"`
	Status    valueobjects.CardStatus `json:"status" yaml:"status"`
	Minutes   int                     `json:"minutes" yaml:"minutes"`
	CreatedAt time.Time               `json:"createdAt" yaml:"createdAt"`
}

// NewCard creates a card in the TODO state.
// Input is expected to have passed the card validator already.
func NewCard(id, weekID, userID, title string, minutes int, now time.Time) *Card {
	return &Card{
		ID:        id,
		UserID:    userID,
		WeekID:    weekID,
		Title:     title,
		Status:    valueobjects.CardStatusTodo,
		Minutes:   minutes,
		CreatedAt: now.UTC(),
	}
}

// Clone returns a copy that shares no state with the receiver
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// IsDone reports whether the card is completed
func (c *Card) IsDone() bool {
	return c.Status == valueobjects.CardStatusDone
}

// IsPending reports whether work on the card has not started
func (c *Card) IsPending() bool {
	return c.Status == valueobjects.CardStatusTodo
}

// HasEstimate reports whether the card carries a non-zero time estimate
func (c *Card) HasEstimate() bool {
	return c.Minutes != 0
}

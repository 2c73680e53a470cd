package ports

import (
	"context"
	"errors"

	"forzeit/domain/core/entities"
	"forzeit/domain/core/valueobjects"
)

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user lookups
type UserRepository interface {
	// GetUserByID retrieves a user by its ID
	GetUserByID(ctx context.Context, id string) (*entities.User, error)
}

// WeekRepository defines the interface for week lookups
type WeekRepository interface {
	// GetWeekByID retrieves a week by its ID
	GetWeekByID(ctx context.Context, id string) (*entities.Week, error)

	// ListWeeksByUser returns a user's weeks, newest start date first,
	// skipping offset entries and returning at most limit
	ListWeeksByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Week, error)
}

// CardRepository defines the interface for card persistence
type CardRepository interface {
	// GetCardByID retrieves a card by its ID
	GetCardByID(ctx context.Context, id string) (*entities.Card, error)

	// ListCardsByWeek retrieves all cards of a week
	ListCardsByWeek(ctx context.Context, weekID string) ([]*entities.Card, error)

	// CreateCard stores a new TODO card and returns it
	CreateCard(ctx context.Context, weekID, title string, minutes int, userID string) (*entities.Card, error)

	// UpdateCardStatus changes a card's status and returns the updated card
	UpdateCardStatus(ctx context.Context, cardID string, status valueobjects.CardStatus) (*entities.Card, error)
}

// SessionRepository defines the interface for session lookups
type SessionRepository interface {
	// ListSessionsByWeekRange returns the user's sessions starting in
	// [weekStart, weekStart+7d)
	ListSessionsByWeekRange(ctx context.Context, userID, weekStartISO string) ([]*entities.Session, error)
}

// RecordStore groups every repository backed by one store
type RecordStore interface {
	UserRepository
	WeekRepository
	CardRepository
	SessionRepository
}

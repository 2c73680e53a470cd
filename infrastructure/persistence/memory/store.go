package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"forzeit/application/ports"
	"forzeit/domain/core/entities"
	"forzeit/domain/core/valueobjects"
)

// Dataset is the full content of the store, as read from a seed file
type Dataset struct {
	Users    []*entities.User    `json:"users" yaml:"users"`
	Weeks    []*entities.Week    `json:"weeks" yaml:"weeks"`
	Cards    []*entities.Card    `json:"cards" yaml:"cards"`
	Sessions []*entities.Session `json:"sessions" yaml:"sessions"`
}

// Store is an in-memory record store. Every read returns copies so callers
// cannot mutate stored records; card creation and updates are serialized.
type Store struct {
	mu       sync.RWMutex
	users    []*entities.User
	weeks    []*entities.Week
	cards    []*entities.Card
	sessions []*entities.Session
	cardIDs  map[string]struct{}

	now    func() time.Time
	logger *zap.Logger
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock overrides the time source used for card creation timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store holding a copy of the dataset
func NewStore(data *Dataset, logger *zap.Logger, opts ...StoreOption) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if data == nil {
		data = &Dataset{}
	}

	s := &Store{
		cardIDs: make(map[string]struct{}),
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, u := range data.Users {
		cp := *u
		s.users = append(s.users, &cp)
	}
	for _, w := range data.Weeks {
		cp := *w
		s.weeks = append(s.weeks, &cp)
	}
	for _, c := range data.Cards {
		s.cards = append(s.cards, c.Clone())
		s.cardIDs[c.ID] = struct{}{}
	}
	for _, sess := range data.Sessions {
		s.sessions = append(s.sessions, sess.Clone())
	}

	return s
}

// Counts reports how many records of each kind are stored
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]int{
		"users":    len(s.users),
		"weeks":    len(s.weeks),
		"cards":    len(s.cards),
		"sessions": len(s.sessions),
	}
}

// GetUserByID implements ports.UserRepository
func (s *Store) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, ports.ErrNotFound)
}

// GetWeekByID implements ports.WeekRepository
func (s *Store) GetWeekByID(ctx context.Context, id string) (*entities.Week, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.weeks {
		if w.ID == id {
			cp := *w
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("week %s: %w", id, ports.ErrNotFound)
}

// ListWeeksByUser implements ports.WeekRepository.
// A non-positive limit returns every remaining week.
func (s *Store) ListWeeksByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Week, error) {
	s.mu.RLock()
	weeks := make([]*entities.Week, 0)
	for _, w := range s.weeks {
		if w.UserID == userID {
			cp := *w
			weeks = append(weeks, &cp)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(weeks, func(i, j int) bool {
		return strings.Compare(weeks[i].StartISO, weeks[j].StartISO) > 0
	})

	if offset > 0 {
		if offset >= len(weeks) {
			return []*entities.Week{}, nil
		}
		weeks = weeks[offset:]
	}
	if limit > 0 && limit < len(weeks) {
		weeks = weeks[:limit]
	}

	return weeks, nil
}

// GetCardByID implements ports.CardRepository
func (s *Store) GetCardByID(ctx context.Context, id string) (*entities.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if card := s.findCard(id); card != nil {
		return card.Clone(), nil
	}
	return nil, fmt.Errorf("card %s: %w", id, ports.ErrNotFound)
}

// ListCardsByWeek implements ports.CardRepository
func (s *Store) ListCardsByWeek(ctx context.Context, weekID string) ([]*entities.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]*entities.Card, 0)
	for _, c := range s.cards {
		if c.WeekID == weekID {
			cards = append(cards, c.Clone())
		}
	}
	return cards, nil
}

// CreateCard implements ports.CardRepository. Id generation and insertion
// happen under one lock so concurrent writers never collide.
func (s *Store) CreateCard(ctx context.Context, weekID, title string, minutes int, userID string) (*entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextCardID()
	card := entities.NewCard(id, weekID, userID, title, minutes, s.now())

	s.cards = append(s.cards, card)
	s.cardIDs[id] = struct{}{}

	s.logger.Debug("Card created",
		zap.String("card_id", id),
		zap.String("week_id", weekID),
		zap.String("user_id", userID),
	)

	return card.Clone(), nil
}

// UpdateCardStatus implements ports.CardRepository
func (s *Store) UpdateCardStatus(ctx context.Context, cardID string, status valueobjects.CardStatus) (*entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card := s.findCard(cardID)
	if card == nil {
		return nil, fmt.Errorf("card %s: %w", cardID, ports.ErrNotFound)
	}

	card.Status = status
	return card.Clone(), nil
}

// ListSessionsByWeekRange implements ports.SessionRepository.
// Sessions whose start cannot be parsed never fall inside a window, and a
// week start that cannot be parsed matches no session at all.
func (s *Store) ListSessionsByWeekRange(ctx context.Context, userID, weekStartISO string) ([]*entities.Session, error) {
	window, err := valueobjects.NewWeekWindow(weekStartISO)
	if err != nil {
		s.logger.Warn("Week start is not a date, no sessions match",
			zap.String("user_id", userID),
			zap.String("week_start", weekStartISO),
			zap.Error(err),
		)
		return []*entities.Session{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*entities.Session, 0)
	for _, sess := range s.sessions {
		if sess.UserID != userID {
			continue
		}
		start, err := sess.Start()
		if err != nil {
			s.logger.Debug("Skipping session with unparseable start",
				zap.String("session_id", sess.ID),
				zap.String("started_at", sess.StartedAt),
			)
			continue
		}
		if window.Contains(start) {
			sessions = append(sessions, sess.Clone())
		}
	}
	return sessions, nil
}

// findCard must be called with the lock held
func (s *Store) findCard(id string) *entities.Card {
	for _, c := range s.cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// nextCardID must be called with the write lock held
func (s *Store) nextCardID() string {
	n := len(s.cards) + 1
	for {
		id := fmt.Sprintf("c%d", n)
		if _, taken := s.cardIDs[id]; !taken {
			return id
		}
		n++
	}
}

var _ ports.RecordStore = (*Store)(nil)

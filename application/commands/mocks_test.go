package commands

import (
	"context"

	"github.com/stretchr/testify/mock"

	"forzeit/domain/core/entities"
	"forzeit/domain/core/valueobjects"
)

type mockWeekRepository struct {
	mock.Mock
}

func (m *mockWeekRepository) GetWeekByID(ctx context.Context, id string) (*entities.Week, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Week), args.Error(1)
}

func (m *mockWeekRepository) ListWeeksByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Week, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*entities.Week), args.Error(1)
}

type mockCardRepository struct {
	mock.Mock
}

func (m *mockCardRepository) GetCardByID(ctx context.Context, id string) (*entities.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Card), args.Error(1)
}

func (m *mockCardRepository) ListCardsByWeek(ctx context.Context, weekID string) ([]*entities.Card, error) {
	args := m.Called(ctx, weekID)
	return args.Get(0).([]*entities.Card), args.Error(1)
}

func (m *mockCardRepository) CreateCard(ctx context.Context, weekID, title string, minutes int, userID string) (*entities.Card, error) {
	args := m.Called(ctx, weekID, title, minutes, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Card), args.Error(1)
}

func (m *mockCardRepository) UpdateCardStatus(ctx context.Context, cardID string, status valueobjects.CardStatus) (*entities.Card, error) {
	args := m.Called(ctx, cardID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Card), args.Error(1)
}

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Invalidate(weekID, ownerID string) {
	m.Called(weekID, ownerID)
}

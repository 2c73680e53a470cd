package services

import (
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"forzeit/domain/core/entities"
)

// Recommendation messages, emitted in this order when their rule fires
const (
	RecommendBreakDownTasks = "Consider breaking down large tasks into smaller, manageable chunks"
	RecommendPrioritize     = "You have many pending tasks. Try to prioritize and focus on 2-3 key items"
	RecommendTrackSessions  = "Start tracking your work sessions to get better insights"
	RecommendGreatWork      = "Great work! You're maintaining excellent focus and productivity"
	RecommendEstimateTime   = "Consider estimating time for your tasks to improve planning"
	RecommendKeepItUp       = "Keep up the good work! Stay consistent with your task management"
)

// Scoring thresholds
const (
	MaxFocusScore        = 100
	LowFocusThreshold    = 30
	HighFocusThreshold   = 80
	PendingCardThreshold = 3

	pointsPerDoneCard    = 10
	pointsPerTrackedHour = 5
)

// Session anomalies. Both are recovered from by counting the session as zero minutes.
var (
	ErrMalformedTimestamp = errors.New("session timestamp is not a valid ISO instant")
	ErrNegativeDuration   = errors.New("session ends before it starts")
)

// SessionDuration returns the whole minutes between a session's start and end.
// Malformed timestamps and end-before-start yield 0 together with the anomaly.
func SessionDuration(session *entities.Session) (int, error) {
	start, err := session.Start()
	if err != nil {
		return 0, ErrMalformedTimestamp
	}
	end, err := session.End()
	if err != nil {
		return 0, ErrMalformedTimestamp
	}
	if end.Before(start) {
		return 0, ErrNegativeDuration
	}
	return int(end.Sub(start) / time.Minute), nil
}

// InsightsEngine derives AvaInsights from a week's cards and sessions.
// It holds no state besides the logger and is safe for concurrent use.
type InsightsEngine struct {
	logger *zap.Logger
}

// NewInsightsEngine creates a new insights engine
func NewInsightsEngine(logger *zap.Logger) *InsightsEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsEngine{logger: logger}
}

// SessionDurationMinutes applies the shared duration policy and logs anomalies
func (e *InsightsEngine) SessionDurationMinutes(session *entities.Session) int {
	minutes, err := SessionDuration(session)
	if err != nil {
		e.logger.Warn("Session duration anomaly, counting as zero minutes",
			zap.String("session_id", session.ID),
			zap.String("started_at", session.StartedAt),
			zap.String("ended_at", session.EndedAt),
			zap.Error(err),
		)
	}
	return minutes
}

// ComputeInsights calculates totals, focus score and recommendations.
// The result depends only on the inputs.
func (e *InsightsEngine) ComputeInsights(cards []*entities.Card, sessions []*entities.Session) entities.AvaInsights {
	totalMinutes := 0
	doneCount := 0
	for _, card := range cards {
		totalMinutes += card.Minutes
		if card.IsDone() {
			doneCount++
		}
	}

	sessionMinutes := 0
	for _, session := range sessions {
		sessionMinutes += e.SessionDurationMinutes(session)
	}

	focusScore := FocusScore(doneCount, sessionMinutes)

	return entities.AvaInsights{
		TotalMinutes:    totalMinutes,
		DoneCount:       doneCount,
		FocusScore:      focusScore,
		Recommendations: recommend(cards, len(sessions), focusScore),
	}
}

// FocusScore computes min(100, round(done*10 + sessionMinutes/60*5)).
// Rounding is half away from zero, so a raw 10.5 scores 11.
func FocusScore(doneCount, sessionMinutes int) int {
	raw := float64(doneCount*pointsPerDoneCard) + float64(sessionMinutes)/60*pointsPerTrackedHour
	score := int(math.Round(raw))
	if score > MaxFocusScore {
		return MaxFocusScore
	}
	return score
}

func recommend(cards []*entities.Card, sessionCount, focusScore int) []string {
	recommendations := make([]string, 0, 4)

	if focusScore < LowFocusThreshold {
		recommendations = append(recommendations, RecommendBreakDownTasks)
	}

	pending := 0
	unestimated := 0
	for _, card := range cards {
		if card.IsPending() {
			pending++
		}
		if !card.HasEstimate() {
			unestimated++
		}
	}

	if pending > PendingCardThreshold {
		recommendations = append(recommendations, RecommendPrioritize)
	}

	if sessionCount == 0 {
		recommendations = append(recommendations, RecommendTrackSessions)
	}

	if focusScore >= HighFocusThreshold {
		recommendations = append(recommendations, RecommendGreatWork)
	}

	if unestimated > 0 {
		recommendations = append(recommendations, RecommendEstimateTime)
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, RecommendKeepItUp)
	}

	return recommendations
}

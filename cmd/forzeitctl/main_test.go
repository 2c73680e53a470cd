package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = "../../data/seed.json"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--seed", seed}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, "token", "u1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "."), 3)

	_, err = run(t, "token", "ghost")
	assert.Error(t, err)
}

func TestInsightsCommand(t *testing.T) {
	out, err := run(t, "insights", "w1", "--as", "u1")
	require.NoError(t, err)

	var result struct {
		Insights struct {
			DoneCount  int `json:"doneCount"`
			FocusScore int `json:"focusScore"`
		} `json:"insights"`
		Cache string `json:"cache"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Insights.DoneCount)
	assert.Equal(t, 18, result.Insights.FocusScore)
	assert.Equal(t, "MISS", result.Cache)
}

func TestInsightsCommand_RequiresOwner(t *testing.T) {
	_, err := run(t, "insights", "w1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHENTICATED")

	_, err = run(t, "insights", "w1", "--as", "u2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORBIDDEN")
}

func TestWeeksCommand(t *testing.T) {
	out, err := run(t, "weeks", "u1", "--limit", "1")
	require.NoError(t, err)

	var page struct {
		Weeks []struct {
			ID string `json:"id"`
		} `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Weeks, 1)
	assert.Equal(t, "w2", page.Weeks[0].ID)
}

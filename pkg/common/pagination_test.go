package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParams_Clamp(t *testing.T) {
	tests := []struct {
		name string
		in   PageParams
		want PageParams
	}{
		{name: "defaults", in: PageParams{}, want: PageParams{Limit: 10, Offset: 0}},
		{name: "negative limit", in: PageParams{Limit: -3, Offset: 2}, want: PageParams{Limit: 10, Offset: 2}},
		{name: "within bounds", in: PageParams{Limit: 25, Offset: 5}, want: PageParams{Limit: 25, Offset: 5}},
		{name: "capped", in: PageParams{Limit: 500}, want: PageParams{Limit: 50}},
		{name: "negative offset", in: PageParams{Limit: 5, Offset: -1}, want: PageParams{Limit: 5, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

func TestExtractPageParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/weeks?limit=7&offset=abc", nil)
	assert.Equal(t, PageParams{Limit: 7}, ExtractPageParams(r))

	r = httptest.NewRequest("GET", "/weeks?limit=-2&offset=3", nil)
	assert.Equal(t, PageParams{Limit: -2, Offset: 3}, ExtractPageParams(r))
}

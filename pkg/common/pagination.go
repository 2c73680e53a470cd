package common

import (
	"net/http"
	"strconv"
)

// Limit/offset bounds for list endpoints
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// PageParams represents limit/offset pagination
type PageParams struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ClampLimit applies the default for non-positive values and caps at MaxLimit
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ClampOffset turns negative offsets into 0
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// Clamp returns params with both bounds applied
func (p PageParams) Clamp() PageParams {
	return PageParams{
		Limit:  ClampLimit(p.Limit),
		Offset: ClampOffset(p.Offset),
	}
}

// ExtractPageParams reads limit and offset from the query string.
// Missing or non-numeric values are treated as 0 before clamping.
func ExtractPageParams(r *http.Request) PageParams {
	var params PageParams

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			params.Limit = l
		}
	}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		if o, err := strconv.Atoi(offset); err == nil {
			params.Offset = o
		}
	}

	return params
}

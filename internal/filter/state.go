package filter

import (
	"net/url"
	"strings"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// Query parameter names.
const (
	ParamTitle    = "q"
	ParamCategory = "category"
	ParamStart    = "start"
	ParamEnd      = "end"
)

// MsgStartAfterEnd is reported on the start field for an inverted range.
const MsgStartAfterEnd = "Start date cannot be after end date"

// State is an applied filter. Zero fields are unset and match everything.
type State struct {
	TitleQuery string         `json:"q,omitempty"`
	Category   types.Category `json:"category,omitempty"`
	StartDate  types.Date     `json:"start"`
	EndDate    types.Date     `json:"end"`
}

// IsEmpty reports whether no clause is set.
func (s State) IsEmpty() bool {
	return s.TitleQuery == "" && s.Category == "" && s.StartDate.IsZero() && s.EndDate.IsZero()
}

// Validate rejects a range whose start is after its end.
func (s State) Validate() error {
	if !s.StartDate.IsZero() && !s.EndDate.IsZero() && s.StartDate.After(s.EndDate) {
		return types.NewValidationError(ParamStart, MsgStartAfterEnd)
	}
	return nil
}

// Encode returns the query parameters for s. Unset fields are omitted.
func (s State) Encode() url.Values {
	v := url.Values{}
	if s.TitleQuery != "" {
		v.Set(ParamTitle, s.TitleQuery)
	}
	if s.Category != "" {
		v.Set(ParamCategory, string(s.Category))
	}
	if !s.StartDate.IsZero() {
		v.Set(ParamStart, s.StartDate.String())
	}
	if !s.EndDate.IsZero() {
		v.Set(ParamEnd, s.EndDate.String())
	}
	return v
}

// Form returns the form projection of s.
func (s State) Form() FormValues {
	return FormValues{
		TitleQuery: s.TitleQuery,
		Category:   string(s.Category),
		StartDate:  s.StartDate.String(),
		EndDate:    s.EndDate.String(),
	}
}

// ParseQuery reads a State from query parameters. Like a browser address
// bar, it is lenient: an unknown category or a malformed date is treated
// as unset. The only error is an inverted date range.
//
// An unknown category therefore matches every record, not none as a strict
// equality test against the raw string would.
func ParseQuery(v url.Values) (State, error) {
	var s State
	s.TitleQuery = v.Get(ParamTitle)
	if c, err := types.ParseCategory(strings.TrimSpace(v.Get(ParamCategory))); err == nil {
		s.Category = c
	}
	if d, err := types.ParseDate(strings.TrimSpace(v.Get(ParamStart))); err == nil {
		s.StartDate = d
	}
	if d, err := types.ParseDate(strings.TrimSpace(v.Get(ParamEnd))); err == nil {
		s.EndDate = d
	}
	if err := s.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

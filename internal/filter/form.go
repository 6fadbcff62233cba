package filter

import (
	"strings"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// Form field messages.
const (
	MsgCategory  = "Category must be one of Personal, Career, Education"
	MsgStartDate = "Start date must be a date (YYYY-MM-DD)"
	MsgEndDate   = "End date must be a date (YYYY-MM-DD)"
)

// FormValues is the editable projection of a State. Empty strings are unset.
type FormValues struct {
	TitleQuery string `json:"q"`
	Category   string `json:"category"`
	StartDate  string `json:"start"`
	EndDate    string `json:"end"`
}

// Parse converts the form into a State. Unlike ParseQuery it is strict:
// every unparseable field is reported, keyed by its query parameter name.
func (f FormValues) Parse() (State, error) {
	var (
		s    State
		verr = &types.ValidationError{}
		err  error
	)
	s.TitleQuery = f.TitleQuery
	if c := strings.TrimSpace(f.Category); c != "" {
		if s.Category, err = types.ParseCategory(c); err != nil {
			verr.Add(ParamCategory, MsgCategory)
		}
	}
	if d := strings.TrimSpace(f.StartDate); d != "" {
		if s.StartDate, err = types.ParseDate(d); err != nil {
			verr.Add(ParamStart, MsgStartDate)
		}
	}
	if d := strings.TrimSpace(f.EndDate); d != "" {
		if s.EndDate, err = types.ParseDate(d); err != nil {
			verr.Add(ParamEnd, MsgEndDate)
		}
	}
	if verr.Empty() {
		if err := s.Validate(); err != nil {
			return State{}, err
		}
		return s, nil
	}
	return State{}, verr
}

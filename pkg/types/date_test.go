package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "calendar date", input: "2018-08-15", want: NewDate(2018, time.August, 15)},
		{name: "browser timestamp", input: "2018-08-15T00:00:00.000Z", want: NewDate(2018, time.August, 15)},
		{name: "offset timestamp keeps the UTC day", input: "2020-03-10T23:30:00-02:00", want: NewDate(2020, time.March, 11)},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "impossible day", input: "2021-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDateOfDropsClock(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	d := DateOf(time.Date(2019, time.July, 22, 23, 59, 0, 0, loc))
	assert.Equal(t, "2019-07-22", d.String())
	assert.True(t, DateOf(time.Time{}).IsZero())
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2019, time.September, 1)
	b := NewDate(2020, time.March, 10)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(MustParseDate("2019-09-01T12:00:00Z")))
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		When Date `json:"when"`
	}

	data, err := json.Marshal(wrapper{When: NewDate(2025, time.September, 21)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"2025-09-21"}`, string(data))

	data, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":null}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"when":"2023-05-20T00:00:00.000Z"}`), &w))
	assert.Equal(t, "2023-05-20", w.When.String())

	require.NoError(t, json.Unmarshal([]byte(`{"when":null}`), &w))
	assert.True(t, w.When.IsZero())

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"when":20230520}`), &w), ErrInvalidDate)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"when":"soon"}`), &w), ErrInvalidDate)
}

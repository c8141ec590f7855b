package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeries_SortsTruncatesAndDedupes(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Helsinki")
	require.NoError(t, err)

	base := time.Date(2023, 1, 2, 10, 0, 0, 0, loc)
	s := NewSeries([]Point{
		{Time: base.Add(2 * time.Hour), Value: 3},
		{Time: base, Value: 1},
		{Time: base.Add(time.Hour + 30*time.Minute), Value: 2}, // truncates to 11:00
		{Time: base, Value: 10},                                // duplicate hour, last wins
	})

	require.Equal(t, 3, s.Len())
	assert.Equal(t, base, s.First().Time)
	assert.Equal(t, 10.0, s.First().Value)
	assert.Equal(t, base.Add(time.Hour), s.Points()[1].Time)
	assert.Equal(t, 2.0, s.Points()[1].Value)
	assert.Equal(t, 3.0, s.Last().Value)
}

func TestSeries_Between(t *testing.T) {
	loc := time.UTC
	base := time.Date(2023, 3, 1, 0, 0, 0, 0, loc)
	points := make([]Point, 0, 10)
	for i := 0; i < 10; i++ {
		points = append(points, Point{Time: base.Add(time.Duration(i) * time.Hour), Value: float64(i)})
	}
	s := NewSeries(points)

	tests := []struct {
		name     string
		from, to time.Time
		wantLen  int
		wantLow  float64
	}{
		{"open both sides", time.Time{}, time.Time{}, 10, 0},
		{"from only", base.Add(3 * time.Hour), time.Time{}, 7, 3},
		{"to only, inclusive", time.Time{}, base.Add(4 * time.Hour), 5, 0},
		{"both", base.Add(2 * time.Hour), base.Add(5 * time.Hour), 4, 2},
		{"empty window", base.Add(20 * time.Hour), time.Time{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Between(tt.from, tt.to)
			require.Equal(t, tt.wantLen, got.Len())
			if got.Len() > 0 {
				assert.Equal(t, tt.wantLow, got.First().Value)
			}
		})
	}
}

func TestSeries_Index(t *testing.T) {
	base := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	s := NewSeries([]Point{
		{Time: base, Value: 1.5},
		{Time: base.Add(time.Hour), Value: 2.5},
	})

	idx := s.Index()
	require.Len(t, idx, 2)
	assert.Equal(t, 1.5, idx[base.Unix()])
	assert.Equal(t, 2.5, idx[base.Add(time.Hour).Unix()])
}

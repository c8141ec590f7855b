package model

import (
	"sort"
	"time"
)

// Point is one hourly observation.
type Point struct {
	Time  time.Time
	Value float64
}

// Series is an hourly time series: chronologically ordered, one value per
// hour. Values are plain float64s; what they mean (kWh, c/kWh) is up to the
// producer. The zero value is an empty series.
type Series struct {
	points []Point
}

// NewSeries builds a Series from raw points. Timestamps are truncated to
// the hour, duplicate hours collapse to the last value seen, and the result
// is sorted chronologically.
func NewSeries(points []Point) Series {
	byHour := make(map[int64]Point, len(points))
	for _, p := range points {
		t := p.Time.Truncate(time.Hour)
		byHour[t.Unix()] = Point{Time: t, Value: p.Value}
	}
	out := make([]Point, 0, len(byHour))
	for _, p := range byHour {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return Series{points: out}
}

func (s Series) Len() int { return len(s.points) }

// Points exposes the backing slice. Callers must treat it as read-only.
func (s Series) Points() []Point { return s.points }

func (s Series) First() Point { return s.points[0] }

func (s Series) Last() Point { return s.points[len(s.points)-1] }

// Between returns the sub-series with First().Time in [from, to]. A zero
// bound is open on that side. The result shares backing storage with s.
func (s Series) Between(from, to time.Time) Series {
	lo := 0
	if !from.IsZero() {
		lo = sort.Search(len(s.points), func(i int) bool {
			return !s.points[i].Time.Before(from)
		})
	}
	hi := len(s.points)
	if !to.IsZero() {
		hi = sort.Search(len(s.points), func(i int) bool {
			return s.points[i].Time.After(to)
		})
	}
	if lo > hi {
		lo = hi
	}
	return Series{points: s.points[lo:hi]}
}

// Index returns an hour-keyed lookup map (unix seconds of the hour start).
func (s Series) Index() map[int64]float64 {
	idx := make(map[int64]float64, len(s.points))
	for _, p := range s.points {
		idx[p.Time.Unix()] = p.Value
	}
	return idx
}

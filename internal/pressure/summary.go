package pressure

import "time"

const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendSteady  = "steady"

	// TrendDeadBand is the smallest change in inHg reported as movement.
	TrendDeadBand = 0.01

	deltaWindow = 24
)

type Summary struct {
	Current  float64 `json:"current"`
	Trend    string  `json:"trend"`
	Delta24h float64 `json:"delta_24h"`
}

// Summarize describes the first day of points: the opening value, the change
// to the last point within 24 readings, and its direction.
func Summarize(points []Point) (Summary, bool) {
	if len(points) == 0 {
		return Summary{}, false
	}

	last := len(points) - 1
	if last >= deltaWindow {
		last = deltaWindow - 1
	}
	delta := points[last].Value - points[0].Value

	trend := TrendSteady
	switch {
	case delta > TrendDeadBand:
		trend = TrendRising
	case delta < -TrendDeadBand:
		trend = TrendFalling
	}

	return Summary{Current: points[0].Value, Trend: trend, Delta24h: delta}, true
}

// Nearest returns the point closest in time to at. Ties go to the earlier
// point.
func Nearest(points []Point, at time.Time) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}

	best := points[0]
	bestDistance := absDuration(best.Time.Sub(at))
	for _, point := range points[1:] {
		if distance := absDuration(point.Time.Sub(at)); distance < bestDistance {
			best = point
			bestDistance = distance
		}
	}
	return best, true
}

func absDuration(value time.Duration) time.Duration {
	if value < 0 {
		return -value
	}
	return value
}

package pressure

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	MockBaseline  = 30.00
	MockAmplitude = 0.15
	MockFrequency = 0.2
	MockJitter    = 0.01
)

// MockProvider generates a sine wave around MockBaseline with a small
// uniform jitter. Series are regenerated on every call.
type MockProvider struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewMockProvider uses source for the jitter. A nil source draws from the
// package-level generator.
func NewMockProvider(source rand.Source) *MockProvider {
	provider := &MockProvider{}
	if source != nil {
		provider.random = rand.New(source)
	}
	return provider
}

func (provider *MockProvider) Series(ctx context.Context, timeRange TimeRange, start time.Time) ([]Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hours := timeRange.Hours()
	if hours == 0 {
		return nil, ErrUnknownRange
	}

	points := make([]Point, hours)
	provider.mu.Lock()
	defer provider.mu.Unlock()
	for offset := 0; offset < hours; offset++ {
		wave := MockAmplitude * math.Sin(float64(offset)*MockFrequency)
		points[offset] = Point{
			Time:  start.Add(time.Duration(offset) * time.Hour),
			Value: MockBaseline + wave + provider.jitter(),
		}
	}
	return points, nil
}

// jitter is uniform in [-MockJitter, MockJitter).
func (provider *MockProvider) jitter() float64 {
	var unit float64
	if provider.random != nil {
		unit = provider.random.Float64()
	} else {
		unit = rand.Float64()
	}
	return (unit*2 - 1) * MockJitter
}

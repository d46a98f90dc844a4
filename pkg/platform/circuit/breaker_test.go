package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
	now time.Time
	b   *Breaker
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.b = New("site",
		WithFailureThreshold(2),
		WithSuccessThreshold(2),
		WithCooldown(time.Minute),
		WithNow(func() time.Time { return s.now }),
	)
}

func (s *BreakerSuite) TestOpensAfterThreshold() {
	useFallback, change := s.b.RecordFailure()
	s.False(useFallback)
	s.False(change.Opened)
	s.True(s.b.Allow())

	useFallback, change = s.b.RecordFailure()
	s.True(useFallback)
	s.True(change.Opened)
	s.True(s.b.IsOpen())
	s.False(s.b.Allow())
}

func (s *BreakerSuite) TestCooldownLetsProbesThrough() {
	s.b.RecordFailure()
	s.b.RecordFailure()

	s.now = s.now.Add(59 * time.Second)
	s.False(s.b.Allow())

	s.now = s.now.Add(time.Second)
	s.True(s.b.Allow())

	s.Run("failed trial call restarts cooldown", func() {
		s.b.RecordFailure()
		s.False(s.b.Allow())
	})
}

func (s *BreakerSuite) TestClosesAfterSuccesses() {
	s.b.RecordFailure()
	s.b.RecordFailure()
	s.now = s.now.Add(time.Minute)

	usePrimary, change := s.b.RecordSuccess()
	s.False(usePrimary)
	s.False(change.Closed)

	usePrimary, change = s.b.RecordSuccess()
	s.True(usePrimary)
	s.True(change.Closed)
	s.Equal(StateClosed, s.b.State())
}

func (s *BreakerSuite) TestSuccessResetsFailureCount() {
	s.b.RecordFailure()
	s.b.RecordSuccess()
	_, change := s.b.RecordFailure()
	s.False(change.Opened)
}

func (s *BreakerSuite) TestReset() {
	s.b.RecordFailure()
	s.b.RecordFailure()
	s.b.Reset()
	s.False(s.b.IsOpen())
	s.True(s.b.Allow())
	s.Equal("site", s.b.Name())
}

package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"esbresolver/internal/platform/kafka/producer"
	"esbresolver/internal/policy/audit"
	"esbresolver/internal/policy/audit/mocks"
)

type AuditSuite struct {
	suite.Suite
	producer *mocks.MockProducer
	now      time.Time
}

func TestAuditSuite(t *testing.T) {
	suite.Run(t, new(AuditSuite))
}

func (s *AuditSuite) SetupTest() {
	s.producer = mocks.NewMockProducer(gomock.NewController(s.T()))
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *AuditSuite) TestEmitPublishesStampedEvent() {
	var got *producer.Message
	s.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *producer.Message) error {
		got = m
		return nil
	})

	p := audit.NewPublisher(s.producer, audit.WithTopic("audit.test"), audit.WithClock(func() time.Time { return s.now }))
	err := p.Emit(context.Background(), audit.Event{
		Type:       audit.EventResolutionEvaluated,
		PolicyName: "Routing",
		Version:    "1.0",
		Outcome:    audit.OutcomeResolved,
	})
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal("audit.test", got.Topic)
	s.Equal("Routing", string(got.Key))
	s.Equal("resolution.evaluated", got.Headers["event_type"])

	var ev audit.Event
	s.Require().NoError(json.Unmarshal(got.Value, &ev))
	s.NotEmpty(ev.ID)
	s.Equal(got.Headers["event_id"], ev.ID)
	s.True(s.now.Equal(ev.Timestamp))
	s.Equal(audit.OutcomeResolved, ev.Outcome)
}

func (s *AuditSuite) TestEmitReturnsProducerError() {
	s.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	p := audit.NewPublisher(s.producer)
	s.Error(p.Emit(context.Background(), audit.Event{PolicyName: "Routing"}))
}

func (s *AuditSuite) TestAsyncBufferDrainsOnClose() {
	var mu sync.Mutex
	var keys []string
	s.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(func(_ context.Context, m *producer.Message) error {
		mu.Lock()
		defer mu.Unlock()
		keys = append(keys, string(m.Key))
		return nil
	})

	p := audit.NewPublisher(s.producer, audit.WithAsyncBuffer(8))
	for _, name := range []string{"a", "b", "c"} {
		s.Require().NoError(p.Emit(context.Background(), audit.Event{PolicyName: name}))
	}
	p.Close()
	p.Close()

	s.Equal([]string{"a", "b", "c"}, keys)
}

func (s *AuditSuite) TestNewPublisherRequiresProducer() {
	s.Panics(func() { audit.NewPublisher(nil) })
	s.NoError(audit.Noop{}.Emit(context.Background(), audit.Event{}))
}

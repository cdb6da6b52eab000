//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"guardian/internal/audit"
	"guardian/pkg/domain"
	"guardian/pkg/testutil/containers"
)

type KafkaStoreSuite struct {
	suite.Suite
	brokers []string
	store   *audit.KafkaStore
	topic   string
}

func TestKafkaStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	redpanda := containers.GetManager().GetRedpanda(s.T())
	s.brokers = redpanda.Brokers
	s.topic = "guardian.consent.audit.test"

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := audit.NewKafkaStore(ctx, s.brokers, s.topic)
	s.Require().NoError(err)
	s.store = store
}

func (s *KafkaStoreSuite) TearDownSuite() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *KafkaStoreSuite) TestAppendProducesKeyedEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	childID := domain.UserID(uuid.New())
	events := []audit.Event{
		{
			Timestamp:   time.Now().UTC(),
			ChildUserID: childID,
			ConsentID:   domain.NewConsentID(),
			Action:      audit.ActionConsentInitiated,
			Method:      "KBA",
			ParentEmail: "parent@example.com",
		},
		{
			Timestamp:   time.Now().UTC(),
			ChildUserID: childID,
			ConsentID:   domain.NewConsentID(),
			Action:      audit.ActionConsentGranted,
			Method:      "KBA",
		},
	}
	for _, event := range events {
		s.Require().NoError(s.store.Append(ctx, event))
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.brokers...),
		kgo.ConsumeTopics(s.topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	var records []*kgo.Record
	for len(records) < len(events) {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(fetches.Err())
		records = append(records, fetches.Records()...)
	}
	s.Require().Len(records, len(events))

	for i, record := range records {
		s.Equal(childID.String(), string(record.Key), "events are keyed by child for partition ordering")

		var decoded audit.Event
		s.Require().NoError(json.Unmarshal(record.Value, &decoded))
		s.Equal(events[i].Action, decoded.Action)
		s.Equal(childID, decoded.ChildUserID)
	}
}

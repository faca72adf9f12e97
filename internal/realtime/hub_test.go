package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvTopic(t *testing.T, s *Subscriber) string {
	t.Helper()
	select {
	case topic := <-s.C():
		return topic
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
		return ""
	}
}

func TestPublishReachesSubscribedTopicOnly(t *testing.T) {
	h := NewHub()
	userID := uuid.New()

	s := h.NewSubscriber()
	h.Add(s, TopicProjects(userID))

	h.Publish(TopicProjects(uuid.New())) // different user
	h.Publish(TopicProjects(userID))

	assert.Equal(t, TopicProjects(userID), recvTopic(t, s))
	select {
	case topic := <-s.C():
		t.Fatalf("unexpected extra notification %q", topic)
	default:
	}
}

func TestPublishFanout(t *testing.T) {
	h := NewHub()
	areaID := uuid.New()

	s1 := h.NewSubscriber()
	s2 := h.NewSubscriber()
	h.Add(s1, TopicTasksByArea(areaID))
	h.Add(s2, TopicTasksByArea(areaID))

	h.Publish(TopicTasksByArea(areaID))
	assert.Equal(t, TopicTasksByArea(areaID), recvTopic(t, s1))
	assert.Equal(t, TopicTasksByArea(areaID), recvTopic(t, s2))
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	h := NewHub()
	topic := TopicAreas(uuid.New())

	s := h.NewSubscriber()
	h.Add(s, topic)

	// Far more publishes than buffer capacity; must coalesce, not deadlock.
	for i := 0; i < 100; i++ {
		h.Publish(topic)
	}
	assert.Equal(t, topic, recvTopic(t, s))
}

func TestRemoveClosesChannel(t *testing.T) {
	h := NewHub()
	topic := TopicNotesByProject(uuid.New())

	s := h.NewSubscriber()
	h.Add(s, topic)
	h.Remove(s)

	_, open := <-s.C()
	require.False(t, open, "channel should be closed after Remove")

	// Publishing after removal must not panic.
	h.Publish(topic)
}

func TestAddAfterRemoveIsNoOp(t *testing.T) {
	h := NewHub()
	topic := TopicTasksByUser(uuid.New())

	s := h.NewSubscriber()
	h.Add(s, topic)
	h.Remove(s)

	// A connection's read side can race its own teardown and try to
	// re-subscribe after removal. The dead subscriber must not re-enter
	// the registry, and publishing must not panic on its closed channel.
	h.Add(s, topic)
	h.Publish(topic)

	// Removing twice is equally harmless.
	h.Remove(s)
}

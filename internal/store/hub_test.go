package store

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	h := NewHub()
	defer h.Close()

	sig, cancel := h.Subscribe(TopicEvents)
	defer cancel()

	h.Publish(TopicEvents)

	select {
	case <-sig:
	case <-time.After(time.Second):
		t.Fatal("no signal received")
	}
}

func TestHub_TopicsAreIndependent(t *testing.T) {
	h := NewHub()
	defer h.Close()

	sig, cancel := h.Subscribe(TopicXP)
	defer cancel()

	h.Publish(TopicEvents)

	select {
	case <-sig:
		t.Fatal("xp subscriber saw an events publish")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_CoalescesWhenSubscriberLags(t *testing.T) {
	h := NewHub()
	defer h.Close()

	sig, cancel := h.Subscribe(TopicEvents)
	defer cancel()

	// Publish never blocks, even with nobody draining.
	for i := 0; i < 10; i++ {
		h.Publish(TopicEvents)
	}

	<-sig
	select {
	case <-sig:
		t.Fatal("expected the ten publishes to coalesce into one signal")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_CancelClosesChannel(t *testing.T) {
	h := NewHub()
	defer h.Close()

	sig, cancel := h.Subscribe(TopicEvents)
	cancel()

	_, open := <-sig
	assert.False(t, open)

	// cancel twice is harmless
	cancel()
}

func TestHub_CloseWakesSubscribers(t *testing.T) {
	h := NewHub()

	sig, cancel := h.Subscribe(TopicEvents)
	defer cancel()

	h.Close()

	_, open := <-sig
	assert.False(t, open)

	// Subscribe after close yields an already-closed channel.
	sig2, cancel2 := h.Subscribe(TopicEvents)
	defer cancel2()
	_, open = <-sig2
	assert.False(t, open)
}

func TestWatch_ReplaysLatestOnSubscribe(t *testing.T) {
	h := NewHub()
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	value := 1
	ch := Watch(ctx, h, TopicEvents, func() (int, error) { return value, nil })

	select {
	case v := <-ch:
		assert.Equal(t, 1, v)
	case <-time.After(time.Second):
		t.Fatal("no initial emission")
	}

	value = 2
	h.Publish(TopicEvents)

	select {
	case v := <-ch:
		assert.Equal(t, 2, v)
	case <-time.After(time.Second):
		t.Fatal("no emission after publish")
	}
}

type syncBuffer struct {
	mu sync.Mutex
	b  strings.Builder
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestWatch_LogsQueryErrorsWithoutEmitting(t *testing.T) {
	var buf syncBuffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	h := NewHub()
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := Watch(ctx, h, TopicEvents, func() (int, error) {
		return 0, errors.New("disk gone")
	})

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "disk gone")
	}, time.Second, 10*time.Millisecond)

	select {
	case <-ch:
		t.Fatal("failed query must not emit")
	default:
	}
}

func TestWatch_ClosesOnContextDone(t *testing.T) {
	h := NewHub()
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := Watch(ctx, h, TopicEvents, func() (int, error) { return 0, nil })

	<-ch // initial
	cancel()

	select {
	case _, open := <-ch:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("stream did not close")
	}
}

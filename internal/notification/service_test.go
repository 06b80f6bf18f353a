package notification

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []string
	fail     bool
	block    chan struct{}
}

func (s *recordingSender) SendMessage(telegramID int64, text string) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("telegram unavailable")
	}
	s.messages = append(s.messages, text)
	return nil
}

func (s *recordingSender) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender)

	d.Enqueue(1, "first")
	d.Enqueue(2, "second")
	d.Close()

	require.Equal(t, []string{"first", "second"}, sender.sent())
}

func TestDispatcherSurvivesSendErrors(t *testing.T) {
	sender := &recordingSender{fail: true}
	d := NewDispatcher(sender)

	d.Enqueue(1, "dropped on the floor")
	d.Close()

	assert.Empty(t, sender.sent())
}

func TestDispatcherNilSenderDiscards(t *testing.T) {
	d := NewDispatcher(nil)

	d.Enqueue(1, "nobody listens")
	d.Close()
}

func TestEnqueueNeverBlocksWhenQueueIsFull(t *testing.T) {
	sender := &recordingSender{block: make(chan struct{})}
	d := NewDispatcher(sender)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// One message may be in flight in the worker; overfill the buffer
		// on top of that so the last Enqueue must hit the drop path.
		for i := 0; i < queueCapacity+2; i++ {
			d.Enqueue(int64(i), "flood")
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(sender.block)
	d.Close()
}

func TestCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&recordingSender{})

	d.Close()
	d.Close()
}

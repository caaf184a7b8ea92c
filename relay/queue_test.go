package relay

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	for i := 0; i < 100; i++ {
		if err := q.Enqueue([]byte{byte(i)}); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}

	for i := 0; i < 100; i++ {
		select {
		case msg := <-q.Out():
			if !bytes.Equal(msg, []byte{byte(i)}) {
				t.Fatalf("message %d out of order: got %v", i, msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for message %d", i)
		}
	}
}

func TestQueueEnqueueDoesNotBlockWithoutConsumer(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			if err := q.Enqueue([]byte("payload")); err != nil {
				t.Errorf("Enqueue() error = %v", err)
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked with no consumer draining the queue")
	}
}

func TestQueueClose(t *testing.T) {
	q := NewQueue()
	_ = q.Enqueue([]byte("pending"))

	q.Close()
	q.Close() // idempotent

	if err := q.Enqueue([]byte("late")); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Enqueue after close error = %v; want ErrQueueClosed", err)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-q.Out():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Out was not closed after Close")
		}
	}
}

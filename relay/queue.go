package relay

import (
	"errors"
	"sync"
)

var (
	ErrQueueClosed = errors.New("outbound queue is closed")
)

// Queue is the unbounded FIFO outbound queue of one connection. Enqueue never
// blocks on a slow consumer; messages buffer between the in and out channels
// until the sender pump drains them. After Close, Out is closed and any
// buffered messages are dropped.
type Queue struct {
	in   chan []byte
	out  chan []byte
	done chan struct{}
	once sync.Once
}

func NewQueue() *Queue {
	q := &Queue{
		in:   make(chan []byte),
		out:  make(chan []byte),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue appends a message in FIFO order. Returns ErrQueueClosed once the
// queue is closed.
func (q *Queue) Enqueue(msg []byte) error {
	// checked separately first: the combined select below could otherwise
	// pick the in case even when done is already closed
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}
	select {
	case <-q.done:
		return ErrQueueClosed
	case q.in <- msg:
		return nil
	}
}

// Out delivers enqueued messages in order. The channel is closed when the
// queue is closed.
func (q *Queue) Out() <-chan []byte {
	return q.out
}

func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.done)
	})
}

func (q *Queue) run() {
	var buf [][]byte
	for {
		if len(buf) == 0 {
			select {
			case <-q.done:
				close(q.out)
				return
			case msg := <-q.in:
				buf = append(buf, msg)
			}
		} else {
			select {
			case <-q.done:
				close(q.out)
				return
			case msg := <-q.in:
				buf = append(buf, msg)
			case q.out <- buf[0]:
				buf = buf[1:]
			}
		}
	}
}

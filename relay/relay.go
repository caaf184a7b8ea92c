package relay

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/askyr/relay-rooms/crypto"
	"github.com/askyr/relay-rooms/metrics"
	"github.com/askyr/relay-rooms/model"
	"github.com/askyr/relay-rooms/storage/memory"
	"github.com/rs/zerolog"
)

var (
	ErrBadRoomID   = errors.New("malformed room identifier")
	ErrRoomNotOpen = errors.New("room is not open")
)

// Relay admits connections into rooms and owns client id allocation. One
// Session per admitted physical connection.
type Relay struct {
	logger   zerolog.Logger
	registry *memory.Registry
	metrics  *metrics.Metrics

	nextClientID atomic.Uint64
}

func New(registry *memory.Registry, mtr *metrics.Metrics, logger *zerolog.Logger) *Relay {
	return &Relay{
		logger:   logger.With().Str("component", "relay").Logger(),
		registry: registry,
		metrics:  mtr,
	}
}

// Admit runs the admission checks for one connection: decode the room id,
// look the room up, verify it is open. All three refusals happen before any
// client id or queue is allocated. On success the connection is registered as
// a room member and its session is returned.
func (rl *Relay) Admit(encodedID string) (*Session, error) {
	id, err := crypto.DecodeRoomID(encodedID)
	if err != nil {
		return nil, errors.Join(ErrBadRoomID, err)
	}
	room, err := rl.registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	if !room.IsOpen() {
		return nil, ErrRoomNotOpen
	}

	clientID := model.ClientID(rl.nextClientID.Add(1))
	queue := NewQueue()
	room.AddClient(clientID, queue)
	rl.metrics.ConnectionsActive.Inc()

	logger := rl.logger.With().Uint64("clientID", uint64(clientID)).Logger()
	logger.Debug().Msg("client admitted")

	return &Session{
		logger:   logger,
		relay:    rl,
		room:     room,
		clientID: clientID,
		queue:    queue,
	}, nil
}

// Session is the relay state of one admitted connection.
type Session struct {
	logger   zerolog.Logger
	relay    *Relay
	room     *model.Room
	clientID model.ClientID
	queue    *Queue

	closeOnce sync.Once
}

func (s *Session) ClientID() model.ClientID {
	return s.clientID
}

// Outbound is the FIFO stream the sender pump writes to the transport. It is
// closed when the session closes.
func (s *Session) Outbound() <-chan []byte {
	return s.queue.Out()
}

// Relay handles one inbound transport message. Only binary payloads are
// fanned out; text payloads are discarded by policy. The payload is enqueued
// onto a snapshot of every other current member's sink; a closed peer queue
// is logged and skipped without aborting the broadcast to the rest. Peers
// registering concurrently with the snapshot do not receive the message.
func (s *Session) Relay(binary bool, payload []byte) {
	if !binary {
		s.relay.metrics.MessagesDiscarded.Inc()
		return
	}

	for _, sink := range s.room.OtherClientSinks(s.clientID) {
		if err := sink.Enqueue(payload); err != nil {
			s.relay.metrics.DeliveryErrors.Inc()
			s.logger.Error().Err(err).Msg("failed to deliver message to peer")
			continue
		}
	}
	s.relay.metrics.MessagesRelayed.Inc()
}

// Close tears the session down: the outbound queue is closed and the client
// is removed from the room. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.queue.Close()
		if !s.room.RemoveClient(s.clientID) {
			// should not happen while admission and close are sequenced per
			// connection
			s.logger.Error().Msg("client was not a room member at disconnect")
		}
		s.relay.metrics.ConnectionsActive.Dec()
		s.logger.Debug().Msg("client disconnected")
	})
}

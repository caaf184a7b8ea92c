package service

import (
	"errors"

	"github.com/askyr/relay-rooms/crypto"
	"github.com/askyr/relay-rooms/metrics"
	"github.com/askyr/relay-rooms/model"
	"github.com/askyr/relay-rooms/relay"
	"github.com/askyr/relay-rooms/storage/memory"
	"github.com/rs/zerolog"
)

var (
	ErrCreate = errors.New("unable to create room")
	ErrJoin   = errors.New("unable to join room")
)

type (
	Service struct {
		secret   crypto.Secret
		baseURL  string
		registry *memory.Registry
		relay    *relay.Relay
		metrics  *metrics.Metrics
		logger   zerolog.Logger
	}

	Config struct {
		Secret   crypto.Secret
		BaseURL  string
		Registry *memory.Registry
		Relay    *relay.Relay
		Metrics  *metrics.Metrics
		Logger   *zerolog.Logger
	}
)

func NewService(cfg Config) *Service {
	return &Service{
		secret:   cfg.Secret,
		baseURL:  cfg.BaseURL,
		registry: cfg.Registry,
		relay:    cfg.Relay,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger.With().Str("component", "service").Logger(),
	}
}

// CreateRoom generates a fresh room identifier, registers the room and
// returns its invite link. A failed identifier draw fails the whole request
// with no partial state.
func (svc *Service) CreateRoom() (string, error) {
	id, err := crypto.GenerateRoomID(svc.secret)
	if err != nil {
		return "", errors.Join(ErrCreate, err)
	}

	room := model.NewRoom(id, svc.baseURL)
	svc.registry.Create(room)
	svc.metrics.RoomsCreated.Inc()
	svc.metrics.RoomsLive.Inc()

	svc.logger.Debug().
		Str("roomID", crypto.EncodeRoomID(id)).
		Msg("room created")
	return room.InviteLink(), nil
}

// Join runs relay admission for one connection against an encoded room id.
func (svc *Service) Join(encodedID string) (*relay.Session, error) {
	session, err := svc.relay.Admit(encodedID)
	if err != nil {
		return nil, errors.Join(ErrJoin, err)
	}
	return session, nil
}

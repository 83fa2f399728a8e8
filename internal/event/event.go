// Package event carries notifications from the simulation core to the
// game-flow and presentation layers.
package event

import (
	"log/slog"

	"github.com/jakecoffman/cp"
)

// Type names an event kind.
type Type string

const (
	CharacterSpawned Type = "character_spawned"
	CharacterDied    Type = "character_died"
	BossPhaseChanged Type = "boss_phase_changed"
	BossDied         Type = "boss_died"
	AbilityCast      Type = "ability_cast"
	BossWarning      Type = "boss_warning"
)

// Event is one notification. Actor is the object the event is about;
// Target is an optional second object (killer, cast target).
type Event struct {
	Type    Type
	Actor   uint32
	Target  uint32
	Payload any
}

// Spawn is the payload of CharacterSpawned.
type Spawn struct {
	Template string
	Kind     string
	Position cp.Vector
}

// Death is the payload of CharacterDied.
type Death struct {
	Template string
	Kind     string
}

// PhaseChange is the payload of BossPhaseChanged.
type PhaseChange struct {
	Boss  string
	Phase int
}

// BossDeath is the payload of BossDied.
type BossDeath struct {
	Boss     string
	Phase    int
	Duration float64 // fight length in simulation seconds
}

// Cast is the payload of AbilityCast.
type Cast struct {
	Ability   string
	Direction cp.Vector
}

// Warning is the payload of BossWarning: a telegraph shown before an
// attack lands.
type Warning struct {
	Attack   string
	Position cp.Vector
	Radius   float64
	Delay    float64
}

// Publisher receives events.
type Publisher interface {
	Publish(e Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(e Event)

func (f PublisherFunc) Publish(e Event) {
	if f == nil {
		return
	}
	f(e)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

// Nop returns a publisher that drops everything.
func Nop() Publisher {
	return nopPublisher{}
}

// Bus is a synchronous fan-out publisher. Handlers run on the publishing
// goroutine in subscription order.
type Bus struct {
	handlers map[Type][]func(Event)
	all      []func(Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]func(Event))}
}

// Subscribe registers fn for one event type.
func (b *Bus) Subscribe(t Type, fn func(Event)) {
	if fn == nil {
		return
	}
	b.handlers[t] = append(b.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (b *Bus) SubscribeAll(fn func(Event)) {
	if fn != nil {
		b.all = append(b.all, fn)
	}
}

// Publish delivers e to its subscribers.
func (b *Bus) Publish(e Event) {
	for _, fn := range b.handlers[e.Type] {
		fn(e)
	}
	for _, fn := range b.all {
		fn(e)
	}
}

// Logger returns a handler that logs every event at debug level.
func Logger() func(Event) {
	return func(e Event) {
		slog.Debug("event",
			"type", string(e.Type),
			"actor", e.Actor,
			"target", e.Target,
			"payload", e.Payload)
	}
}

package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_Publish(t *testing.T) {
	b := NewBus()

	var typed, all []Type
	b.Subscribe(BossDied, func(e Event) { typed = append(typed, e.Type) })
	b.SubscribeAll(func(e Event) { all = append(all, e.Type) })
	b.SubscribeAll(Logger())

	b.Publish(Event{Type: BossPhaseChanged, Actor: 1, Payload: PhaseChange{Phase: 2}})
	b.Publish(Event{Type: BossDied, Actor: 1, Target: 2})

	assert.Equal(t, []Type{BossDied}, typed)
	assert.Equal(t, []Type{BossPhaseChanged, BossDied}, all)
}

func TestPublisherFunc(t *testing.T) {
	var got Event
	var p Publisher = PublisherFunc(func(e Event) { got = e })
	p.Publish(Event{Type: AbilityCast, Actor: 5})
	assert.Equal(t, uint32(5), got.Actor)

	var nilFn PublisherFunc
	assert.NotPanics(t, func() { nilFn.Publish(Event{}) })
	assert.NotPanics(t, func() { Nop().Publish(Event{}) })
}

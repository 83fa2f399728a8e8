package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	log []string
}

type testState struct {
	name string
	rec  *recorder

	ticks  int
	onTick func()
}

func (s *testState) Name() string { return s.name }
func (s *testState) Enter() { s.rec.log = append(s.rec.log, "enter "+s.name) }
func (s *testState) Exit() { s.rec.log = append(s.rec.log, "exit "+s.name) }
func (s *testState) Tick(float64) {
	s.ticks++
	if s.onTick != nil {
		s.onTick()
	}
}

type testParent struct {
	testState
	sub *StateMachine
}

func (s *testParent) SubMachine() *StateMachine { return s.sub }

func TestStateMachine_ExitThenEnter(t *testing.T) {
	rec := &recorder{}
	a := &testState{name: "a", rec: rec}
	b := &testState{name: "b", rec: rec}
	m := New("test")

	var changes [][2]State
	m.OnChange(func(from, to State) { changes = append(changes, [2]State{from, to}) })

	m.ChangeState(a)
	m.ChangeState(b)
	m.ChangeState(a)

	assert.Equal(t, []string{"enter a", "exit a", "enter b", "exit b", "enter a"}, rec.log)
	assert.True(t, m.IsIn(a))
	assert.Same(t, b, m.Previous())
	require.Len(t, changes, 3)
	assert.Nil(t, changes[0][0])
}

func TestStateMachine_NilStatePanics(t *testing.T) {
	m := New("test")
	assert.Panics(t, func() { m.ChangeState(nil) })
}

func TestStateMachine_TransitionFromTick(t *testing.T) {
	rec := &recorder{}
	b := &testState{name: "b", rec: rec}
	m := New("test")
	a := &testState{name: "a", rec: rec}
	a.onTick = func() { m.ChangeState(b) }

	m.ChangeState(a)
	m.Tick(0.1)
	m.Tick(0.1)

	assert.True(t, m.IsIn(b))
	assert.Equal(t, 1, a.ticks)
	assert.Equal(t, 1, b.ticks)
}

func TestHierarchical_TicksAndClears(t *testing.T) {
	rec := &recorder{}
	child := &testState{name: "child", rec: rec}
	parent := &testParent{testState: testState{name: "parent", rec: rec}, sub: New("sub")}

	h := NewHierarchical("outer")
	h.ChangeState(parent)
	parent.sub.ChangeState(child)

	h.Tick(0.1)
	assert.Equal(t, 1, parent.ticks)
	assert.Equal(t, 1, child.ticks)
	assert.Same(t, child, h.CurrentSubState())

	h.Clear()
	assert.Nil(t, h.Current())
	assert.Nil(t, parent.sub.Current())
	assert.Equal(t, []string{"enter parent", "enter child", "exit child", "exit parent"}, rec.log)

	h.Clear()
	assert.Nil(t, h.CurrentSubState())
}

// Package fsm provides the state machines used by boss behavior.
//
// A machine holds at most one current state. A transition is always
// Exit(old) followed by Enter(new); there is no transition table, the
// owner of the machine decides which transitions are legal.
package fsm

import "fmt"

// State is one behavior unit. Identity is by reference.
type State interface {
	Name() string
	Enter()
	Tick(dt float64)
	Exit()
}

// HierarchicalState is a state that owns a nested machine. The nested
// machine is ticked after the state itself and cleared when the state exits.
type HierarchicalState interface {
	State
	SubMachine() *StateMachine
}

// StateMachine is a flat single-level machine.
type StateMachine struct {
	name     string
	current  State
	previous State

	changing bool

	onChange []func(from, to State)
}

// New creates an empty machine. name is used in panics and logs.
func New(name string) *StateMachine {
	return &StateMachine{name: name}
}

// Name returns the machine name.
func (m *StateMachine) Name() string {
	return m.name
}

// Current returns the current state, nil when empty.
func (m *StateMachine) Current() State {
	return m.current
}

// Previous returns the state that was current before the last change.
func (m *StateMachine) Previous() State {
	return m.previous
}

// IsIn reports whether s is the current state.
func (m *StateMachine) IsIn(s State) bool {
	return m.current != nil && m.current == s
}

// OnChange registers a hook invoked after every transition.
func (m *StateMachine) OnChange(fn func(from, to State)) {
	if fn != nil {
		m.onChange = append(m.onChange, fn)
	}
}

// ChangeState exits the current state and enters next.
// Passing nil is a programming error and panics.
func (m *StateMachine) ChangeState(next State) {
	if next == nil {
		panic(fmt.Sprintf("fsm %q: ChangeState called with nil state", m.name))
	}
	if m.changing {
		panic(fmt.Sprintf("fsm %q: ChangeState to %q during Exit", m.name, next.Name()))
	}

	from := m.current
	if from != nil {
		m.changing = true
		m.exit(from)
		m.changing = false
	}

	m.previous = from
	m.current = next
	next.Enter()

	for _, fn := range m.onChange {
		fn(from, next)
	}
}

// Tick forwards dt to the current state.
func (m *StateMachine) Tick(dt float64) {
	cur := m.current
	if cur == nil {
		return
	}
	cur.Tick(dt)

	// The state may have replaced itself during Tick.
	if h, ok := cur.(HierarchicalState); ok && m.current == cur {
		h.SubMachine().Tick(dt)
	}
}

// Clear unconditionally exits the current state and leaves the machine
// empty. There is no graceful wind-down.
func (m *StateMachine) Clear() {
	if m.current == nil {
		return
	}
	cur := m.current
	m.current = nil
	m.previous = cur
	m.exit(cur)
}

func (m *StateMachine) exit(s State) {
	if h, ok := s.(HierarchicalState); ok {
		h.SubMachine().Clear()
	}
	s.Exit()
}

// HierarchicalStateMachine is the outer level of a two-level machine.
// Its states are usually HierarchicalState values that own their own
// nested StateMachine.
type HierarchicalStateMachine struct {
	*StateMachine
}

// NewHierarchical creates an empty outer machine.
func NewHierarchical(name string) *HierarchicalStateMachine {
	return &HierarchicalStateMachine{StateMachine: New(name)}
}

// CurrentSubState returns the nested current state, nil when the outer
// state is flat or empty.
func (m *HierarchicalStateMachine) CurrentSubState() State {
	h, ok := m.current.(HierarchicalState)
	if !ok {
		return nil
	}
	return h.SubMachine().Current()
}

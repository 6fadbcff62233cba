package filter

import (
	"net/url"
	"sync"
)

// Phase is where the Manager is in the edit cycle. Applied and Cleared are
// transient: observers see them, after which the Manager is Idle again.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEditing
	PhaseApplied
	PhaseCleared
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEditing:
		return "editing"
	case PhaseApplied:
		return "applied"
	case PhaseCleared:
		return "cleared"
	default:
		return "phase(?)"
	}
}

// Event is delivered to subscribers whenever the applied State changes.
// Phase is PhaseApplied after Submit, PhaseCleared after Clear, and
// PhaseIdle after SetQuery.
type Event struct {
	Phase Phase
	State State
}

// Manager owns the single canonical filter State and keeps the form and
// query projections consistent with it. It is safe for concurrent use.
// Subscribers are called synchronously, outside the lock, in no
// particular order.
type Manager struct {
	mu    sync.Mutex
	state State
	form  FormValues
	phase Phase

	subs   map[int]func(Event)
	nextID int
}

// NewManager starts from the given query parameters. An inverted date range
// is an error; other malformed values are treated as unset.
func NewManager(query url.Values) (*Manager, error) {
	s, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}
	return &Manager{state: s, form: s.Form(), subs: make(map[int]func(Event))}, nil
}

// SetQuery applies an external query change, such as navigation. The form
// is reset to mirror the new state and any pending edit is discarded. On
// error nothing changes.
func (m *Manager) SetQuery(query url.Values) error {
	s, err := ParseQuery(query)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.state = s
	m.form = s.Form()
	m.phase = PhaseIdle
	subs := m.subscribers()
	m.mu.Unlock()

	notify(subs, Event{Phase: PhaseIdle, State: s})
	return nil
}

// Edit replaces the pending form values. The applied state is unchanged.
func (m *Manager) Edit(form FormValues) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form = form
	m.phase = PhaseEditing
}

// Submit validates the pending form and, if it is valid, makes it the
// applied state. An invalid form keeps the Manager in PhaseEditing and
// returns a *types.ValidationError; the applied state is untouched.
func (m *Manager) Submit() (State, error) {
	m.mu.Lock()
	s, err := m.form.Parse()
	if err != nil {
		m.phase = PhaseEditing
		m.mu.Unlock()
		return State{}, err
	}
	m.state = s
	m.form = s.Form()
	m.phase = PhaseIdle
	subs := m.subscribers()
	m.mu.Unlock()

	notify(subs, Event{Phase: PhaseApplied, State: s})
	return s, nil
}

// Clear resets the applied state and the form to empty.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.state = State{}
	m.form = FormValues{}
	m.phase = PhaseIdle
	subs := m.subscribers()
	m.mu.Unlock()

	notify(subs, Event{Phase: PhaseCleared})
}

// Phase returns the current phase.
func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// State returns the applied state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Form returns the form values, including a pending edit.
func (m *Manager) Form() FormValues {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// Query returns the query parameters of the applied state.
func (m *Manager) Query() url.Values {
	return m.State().Encode()
}

// Subscribe registers fn for state changes and returns a function that
// removes it.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// subscribers snapshots the handlers; the caller holds m.mu.
func (m *Manager) subscribers() []func(Event) {
	out := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}

package host

// EventKind enumerates the lifecycle notifications the host delivers.
type EventKind int

const (
	SessionStart EventKind = iota
	ToolCall
	UserBash
	AgentStart
	AgentEnd

	numEventKinds
)

var eventNames = [numEventKinds]string{
	SessionStart: "session_start",
	ToolCall:     "tool_call",
	UserBash:     "user_bash",
	AgentStart:   "agent_start",
	AgentEnd:     "agent_end",
}

func (k EventKind) String() string {
	if k < 0 || k >= numEventKinds {
		return "unknown"
	}
	return eventNames[k]
}

// ParseEventKind maps a wire name to its kind.
func ParseEventKind(name string) (EventKind, bool) {
	for k, n := range eventNames {
		if n == name {
			return EventKind(k), true
		}
	}
	return 0, false
}

// Event is one lifecycle notification.
type Event struct {
	Kind EventKind

	// ToolCall
	ToolName string
	Input    map[string]any

	// UserBash
	Command string
}

// Handler reacts to an event. Handlers run on the host loop and must not
// block.
type Handler func(Event)

// Dispatcher routes events through a fixed table indexed by kind.
type Dispatcher struct {
	table [numEventKinds][]Handler
}

// On subscribes h to kind. Unknown kinds are ignored.
func (d *Dispatcher) On(kind EventKind, h Handler) {
	if kind < 0 || kind >= numEventKinds || h == nil {
		return
	}
	d.table[kind] = append(d.table[kind], h)
}

// Dispatch delivers ev to every handler subscribed to its kind, in
// subscription order.
func (d *Dispatcher) Dispatch(ev Event) {
	if ev.Kind < 0 || ev.Kind >= numEventKinds {
		return
	}
	for _, h := range d.table[ev.Kind] {
		h(ev)
	}
}

// Handlers returns how many handlers kind has.
func (d *Dispatcher) Handlers(kind EventKind) int {
	if kind < 0 || kind >= numEventKinds {
		return 0
	}
	return len(d.table[kind])
}

package event

// Entry is a registration in a notifier list. Subscribers own the entry
// and control its lifetime; a notifier only keeps it in its set while
// attached.
type Entry struct {
	notify func()
	owner  *Notifier
}

// NewEntry creates an entry that invokes fn each time its notifier runs.
func NewEntry(fn func()) *Entry {
	return &Entry{notify: fn}
}

// Attached reports whether the entry is currently registered.
func (e *Entry) Attached() bool {
	return e.owner != nil
}

// Notifier is an edge-triggered observer list. It is not independently
// synchronized; owners run it under the lock that guards the state the
// callbacks observe.
type Notifier struct {
	entries map[*Entry]struct{}
}

// Register attaches an entry. Registering an entry that is already in
// this list is a no-op; an entry may only belong to one list at a time.
func (n *Notifier) Register(e *Entry) {
	if e.owner == n {
		return
	}
	if e.owner != nil {
		panic("event: entry registered with another notifier")
	}
	if n.entries == nil {
		n.entries = make(map[*Entry]struct{})
	}
	n.entries[e] = struct{}{}
	e.owner = n
}

// Unregister detaches an entry. Unregistering an entry that is not
// attached to this list is a no-op.
func (n *Notifier) Unregister(e *Entry) {
	if e.owner != n {
		return
	}
	delete(n.entries, e)
	e.owner = nil
}

// Run fires every registered entry. Entries stay registered and fire
// again on the next run.
func (n *Notifier) Run() {
	for e := range n.entries {
		e.notify()
	}
}

// Empty reports whether the list has no registrations.
func (n *Notifier) Empty() bool {
	return len(n.entries) == 0
}

// Len returns the number of registrations.
func (n *Notifier) Len() int {
	return len(n.entries)
}

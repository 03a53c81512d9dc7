package project

import "github.com/google/uuid"

// Field names published in Change events for project-level state that is
// not a plain setter.
const (
	FieldIsDirty            = "IsDirty"
	FieldDisplayTitle       = "DisplayTitle"
	FieldItems              = "Items"
	FieldSaveLocation       = "SaveLocation"
	FieldObfuscationExample = "ObfuscationExample"
)

// Change describes one field assignment. ItemID is uuid.Nil for fields of the
// Project itself.
type Change struct {
	ItemID uuid.UUID
	Field  string
}

// Sink receives change notifications from a Project. Implementations run
// synchronously on the mutating call and must not block.
type Sink interface {
	PropertyChanged(c Change)
	ValidationChanged(r Result)
}

// SinkFuncs adapts plain functions to a Sink. Nil functions are skipped.
type SinkFuncs struct {
	OnPropertyChanged   func(Change)
	OnValidationChanged func(Result)
}

// PropertyChanged implements Sink.
func (s SinkFuncs) PropertyChanged(c Change) {
	if s.OnPropertyChanged != nil {
		s.OnPropertyChanged(c)
	}
}

// ValidationChanged implements Sink.
func (s SinkFuncs) ValidationChanged(r Result) {
	if s.OnValidationChanged != nil {
		s.OnValidationChanged(r)
	}
}

// Notifier fans events out to its subscribers in subscription order.
type Notifier struct {
	next int
	subs []subscription
}

type subscription struct {
	id   int
	sink Sink
}

// Subscribe registers s and returns a function that removes it again.
func (n *Notifier) Subscribe(s Sink) (unsubscribe func()) {
	n.next++
	id := n.next
	n.subs = append(n.subs, subscription{id: id, sink: s})
	return func() {
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of subscribers.
func (n *Notifier) Len() int { return len(n.subs) }

// snapshot lets subscribers unsubscribe while an event is being delivered.
func (n *Notifier) snapshot() []subscription {
	return append([]subscription(nil), n.subs...)
}

func (n *Notifier) propertyChanged(c Change) {
	for _, sub := range n.snapshot() {
		sub.sink.PropertyChanged(c)
	}
}

func (n *Notifier) validationChanged(r Result) {
	for _, sub := range n.snapshot() {
		sub.sink.ValidationChanged(r)
	}
}

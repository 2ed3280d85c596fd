package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/friday/internal/widget"
)

// Recording is a widget.Document that records every mutation.
type Recording struct {
	tick      int
	events    []TraceEvent
	container string
	attached  bool
}

// NewRecording creates an empty Recording.
func NewRecording() *Recording {
	return &Recording{}
}

// SetTick stamps subsequent events with tick index i.
func (r *Recording) SetTick(i int) {
	r.tick = i
}

// Events returns the recorded events.
func (r *Recording) Events() []TraceEvent {
	out := make([]TraceEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Container returns the attach target, or "" before Attach.
func (r *Recording) Container() string {
	return r.container
}

func (r *Recording) record(node, kind, value, alt string) {
	r.events = append(r.events, TraceEvent{
		Seq:   len(r.events) + 1,
		Tick:  r.tick,
		Node:  node,
		Kind:  kind,
		Value: value,
		Alt:   alt,
	})
}

type label struct {
	widget.NodeBase
	doc  *Recording
	name string
}

func (l *label) SetText(text string) error {
	l.doc.record(l.name, KindText, text, "")
	return nil
}

type image struct {
	widget.NodeBase
	doc *Recording
}

func (i *image) SetSource(src, alt string) error {
	i.doc.record(NodeImage, KindSource, src, alt)
	return nil
}

func (r *Recording) Label(level widget.Level) widget.Label {
	return &label{doc: r, name: level.String()}
}

func (r *Recording) Image(width, height int) widget.Image {
	return &image{doc: r}
}

func (r *Recording) Attach(container string, nodes ...widget.Node) error {
	if r.attached {
		return widget.ErrAlreadyAttached
	}
	names := make([]string, len(nodes))
	for i, n := range nodes {
		switch n := n.(type) {
		case *label:
			names[i] = n.name
		case *image:
			names[i] = NodeImage
		default:
			return fmt.Errorf("harness: foreign node %T", n)
		}
	}
	r.attached = true
	r.container = container
	r.record(container, KindAttach, strings.Join(names, " "), "")
	return nil
}

package widget

import "errors"

// ErrAlreadyAttached is returned by Document implementations when Attach is
// called a second time.
var ErrAlreadyAttached = errors.New("widget: nodes already attached")

// Level ranks the three text labels.
type Level int

const (
	// Primary carries the yes/no answer.
	Primary Level = iota + 1
	// Secondary carries the date.
	Secondary
	// Tertiary carries the time.
	Tertiary
)

func (l Level) String() string {
	switch l {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Tertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// Node is a presentation node created by a Document.
type Node interface {
	node()
}

// Label is a text node.
type Label interface {
	Node
	SetText(text string) error
}

// Image is an image node with a source and alternative text.
type Image interface {
	Node
	SetSource(src, alt string) error
}

// Document creates presentation nodes and attaches them, once, to a
// container. The widget only writes to nodes; it never reads them back.
type Document interface {
	Label(level Level) Label
	Image(width, height int) Image
	Attach(container string, nodes ...Node) error
}

// Flusher is implemented by documents that batch mutations. Flush is called
// once after every tick.
type Flusher interface {
	Flush() error
}

// NodeBase can be embedded by Document implementations outside this package
// to satisfy Node.
type NodeBase struct{}

func (NodeBase) node() {}

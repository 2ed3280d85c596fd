// Package terminal implements widget.Document on a text stream.
//
// On a TTY every changed frame redraws the screen. On any other writer each
// changed frame is appended as one line, which keeps piped output readable.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/friday/internal/widget"
)

const clearScreen = "\x1b[H\x1b[2J"

// Option configures a Document.
type Option func(*Document)

// WithTTY forces redraw (true) or line (false) mode.
func WithTTY(tty bool) Option {
	return func(d *Document) { d.tty = tty }
}

// Document renders widget nodes to a writer.
//
// Thread-safety: all methods are safe for concurrent use.
type Document struct {
	mu    sync.Mutex
	w     io.Writer
	tty   bool
	upper cases.Caser

	container string
	nodes     []widget.Node // attachment order; nil until Attach
	last      frame         // last frame written
}

// New creates a Document writing to w. TTY mode is detected when w is a
// terminal *os.File.
func New(w io.Writer, opts ...Option) *Document {
	d := &Document{
		w:     w,
		upper: cases.Upper(language.Und),
	}
	if f, ok := w.(*os.File); ok {
		d.tty = term.IsTerminal(int(f.Fd()))
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type label struct {
	widget.NodeBase
	doc   *Document
	level widget.Level
	text  string
}

func (l *label) SetText(s string) error {
	l.doc.mu.Lock()
	defer l.doc.mu.Unlock()
	l.text = s
	return nil
}

type image struct {
	widget.NodeBase
	doc           *Document
	width, height int
	src, alt      string
}

func (i *image) SetSource(src, alt string) error {
	i.doc.mu.Lock()
	defer i.doc.mu.Unlock()
	i.src, i.alt = src, alt
	return nil
}

// Label implements widget.Document.
func (d *Document) Label(level widget.Level) widget.Label {
	return &label{doc: d, level: level}
}

// Image implements widget.Document.
func (d *Document) Image(width, height int) widget.Image {
	return &image{doc: d, width: width, height: height}
}

// Attach implements widget.Document. The attached nodes are drawn
// immediately.
func (d *Document) Attach(container string, nodes ...widget.Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.nodes != nil {
		return widget.ErrAlreadyAttached
	}
	for _, n := range nodes {
		switch n.(type) {
		case *label, *image:
		default:
			return fmt.Errorf("terminal: foreign node %T", n)
		}
	}
	d.container = container
	d.nodes = append(make([]widget.Node, 0, len(nodes)), nodes...)
	return d.flushLocked()
}

// Flush implements widget.Flusher. Nothing is written while detached or
// when the frame is unchanged.
func (d *Document) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flushLocked()
}

func (d *Document) flushLocked() error {
	if d.nodes == nil {
		return nil
	}
	frame := d.frameLocked()
	if frame == d.last {
		return nil
	}
	d.last = frame

	var err error
	if d.tty {
		_, err = io.WriteString(d.w, clearScreen+strings.Join(frame.lines(), "\n")+"\n")
	} else {
		_, err = io.WriteString(d.w, strings.Join(frame.lines(), " | ")+"\n")
	}
	return err
}

// Render returns the current frame, one node per line.
func (d *Document) Render() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.Join(d.frameLocked().lines(), "\n")
}

// Container returns the name passed to Attach.
func (d *Document) Container() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.container
}

// frame is one rendering of the attached nodes.
type frame string

func (f frame) lines() []string {
	if f == "" {
		return nil
	}
	return strings.Split(string(f), "\n")
}

func (d *Document) frameLocked() frame {
	var lines []string
	for _, n := range d.nodes {
		switch v := n.(type) {
		case *label:
			if v.text == "" {
				continue
			}
			if v.level == widget.Primary {
				lines = append(lines, d.upper.String(v.text))
			} else {
				lines = append(lines, v.text)
			}
		case *image:
			if v.src == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("[%s] (%s %dx%d)", v.alt, v.src, v.width, v.height))
		}
	}
	return frame(strings.Join(lines, "\n"))
}

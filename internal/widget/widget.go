package widget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/friday/internal/calendar"
	"github.com/roach88/friday/internal/driver"
	"github.com/roach88/friday/internal/gate"
)

// Slot names, in tick order.
const (
	SlotDay  = "day"
	SlotDate = "date"
	SlotTime = "time"
)

// Defaults applied by Config.normalize.
const (
	DefaultTarget      = "Friday"
	DefaultMatchLocale = "en-US"
	DefaultContainer   = "main"
	DefaultImageSize   = 480
	DefaultPeriod      = time.Second
)

// Variant is what the primary label and image show for one answer.
type Variant struct {
	Text string `json:"text"`
	Src  string `json:"src"`
	Alt  string `json:"alt"`
}

// Config configures a Widget.
type Config struct {
	// Zone is the time zone every sampler renders in. Required.
	Zone *time.Location

	// Locale is the display locale for date and time text. Empty means en-US.
	Locale string

	// MatchLocale is the locale whose weekday names the day test inspects.
	MatchLocale string

	// Target is the weekday name, in MatchLocale, that counts as "yes".
	Target string

	// PrefixLen is how many leading characters of the weekday are compared.
	PrefixLen int

	Yes Variant
	No  Variant

	ImageWidth  int
	ImageHeight int

	// Container names where the nodes are attached.
	Container string

	// Period is the refresh interval used by Listen.
	Period time.Duration
}

func (c Config) normalize() (Config, error) {
	if c.Zone == nil {
		return c, fmt.Errorf("widget: %w: no zone configured", calendar.ErrZoneUnavailable)
	}
	if c.Target == "" {
		c.Target = DefaultTarget
	}
	if c.MatchLocale == "" {
		c.MatchLocale = DefaultMatchLocale
	}
	if c.Container == "" {
		c.Container = DefaultContainer
	}
	if c.ImageWidth <= 0 {
		c.ImageWidth = DefaultImageSize
	}
	if c.ImageHeight <= 0 {
		c.ImageHeight = DefaultImageSize
	}
	if c.Period <= 0 {
		c.Period = DefaultPeriod
	}
	return c, nil
}

// Snapshot is the typed view of the three Gates' last dispatched values.
type Snapshot struct {
	Match bool   `json:"match"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// Recorder is told about every notification. metrics.Recorder implements it.
type Recorder interface {
	Notified(slot string)
}

// Option configures a Widget.
type Option func(*Widget)

// WithRecorder counts notifications per slot.
func WithRecorder(r Recorder) Option {
	return func(w *Widget) { w.recorder = r }
}

// Widget binds the day, date and time samplers to four presentation nodes.
//
// A Widget is a gate.Operation[time.Time]; drive it with Listen or any
// other single-goroutine ticker.
type Widget struct {
	cfg      Config
	doc      Document
	recorder Recorder

	primary   Label
	secondary Label
	tertiary  Label
	image     Image

	day   *gate.Gate[time.Time, bool]
	date  *gate.Gate[time.Time, string]
	clock *gate.Gate[time.Time, string]
	group *gate.Group[time.Time]
}

// samplers holds the three pure samplers for one configuration.
type samplers struct {
	day  *DayMatch
	date *Text
	time *Text
}

func newSamplers(cfg Config) (*samplers, error) {
	weekday, err := calendar.NewFormatter(cfg.MatchLocale, cfg.Zone, calendar.StyleWeekday)
	if err != nil {
		return nil, err
	}
	day, err := NewDayMatch(weekday, cfg.Target, cfg.PrefixLen)
	if err != nil {
		return nil, err
	}
	date, err := calendar.NewFormatter(cfg.Locale, cfg.Zone, calendar.StyleFullDate)
	if err != nil {
		return nil, err
	}
	clock, err := calendar.NewFormatter(cfg.Locale, cfg.Zone, calendar.StyleFullTime)
	if err != nil {
		return nil, err
	}
	return &samplers{day: day, date: NewText(date), time: NewText(clock)}, nil
}

// New creates the nodes and gates. Nothing is attached or painted yet.
func New(cfg Config, doc Document, opts ...Option) (*Widget, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	s, err := newSamplers(cfg)
	if err != nil {
		return nil, err
	}

	w := &Widget{
		cfg:       cfg,
		doc:       doc,
		image:     doc.Image(cfg.ImageWidth, cfg.ImageHeight),
		primary:   doc.Label(Primary),
		secondary: doc.Label(Secondary),
		tertiary:  doc.Label(Tertiary),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.day = gate.New(s.day.Sample, w.showDay)
	w.date = gate.New(s.date.Sample, w.text(SlotDate, w.secondary))
	w.clock = gate.New(s.time.Sample, w.text(SlotTime, w.tertiary))
	w.group = gate.Join[time.Time](w.day, w.date, w.clock)

	return w, nil
}

func (w *Widget) showDay(match bool) error {
	w.notified(SlotDay)
	v := w.cfg.No
	if match {
		v = w.cfg.Yes
	}
	if err := w.primary.SetText(v.Text); err != nil {
		return err
	}
	return w.image.SetSource(v.Src, v.Alt)
}

func (w *Widget) text(slot string, l Label) gate.Handler[string] {
	return func(s string) error {
		w.notified(slot)
		return l.SetText(s)
	}
}

func (w *Widget) notified(slot string) {
	if w.recorder != nil {
		w.recorder.Notified(slot)
	}
}

// Run drives one tick: every gate in slot order, then a document flush.
func (w *Widget) Run(t time.Time) error {
	err := w.group.Run(t)
	if f, ok := w.doc.(Flusher); ok {
		if ferr := f.Flush(); ferr != nil {
			return errors.Join(err, fmt.Errorf("flush: %w", ferr))
		}
	}
	return err
}

// Mount attaches the nodes to the configured container.
func (w *Widget) Mount() error {
	return w.doc.Attach(w.cfg.Container, w.image, w.primary, w.secondary, w.tertiary)
}

// Listen paints once, attaches the nodes and keeps refreshing every
// cfg.Period until the Handle is stopped.
func (w *Widget) Listen(ctx context.Context, opts ...driver.Option) (*driver.Handle, error) {
	h, err := driver.Start(ctx, w, w.cfg.Period, opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Mount(); err != nil {
		h.Stop()
		return nil, fmt.Errorf("mount: %w", err)
	}
	return h, nil
}

// Snapshot returns the last dispatched values. ok is false until every gate
// has dispatched once.
func (w *Widget) Snapshot() (Snapshot, bool) {
	match, ok1 := w.day.Last()
	date, ok2 := w.date.Last()
	clock, ok3 := w.clock.Last()
	return Snapshot{Match: match, Date: date, Time: clock}, ok1 && ok2 && ok3
}

// Config returns the normalized configuration.
func (w *Widget) Config() Config {
	return w.cfg
}

// Evaluate samples t once without any document.
func Evaluate(cfg Config, t time.Time) (Snapshot, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return Snapshot{}, err
	}
	s, err := newSamplers(cfg)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if snap.Match, err = s.day.Sample(t); err != nil {
		return Snapshot{}, err
	}
	if snap.Date, err = s.date.Sample(t); err != nil {
		return Snapshot{}, err
	}
	if snap.Time, err = s.time.Sample(t); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/parley/internal/chat"
	"github.com/samdwyer/parley/internal/config"
	"github.com/samdwyer/parley/internal/logger"
	"github.com/samdwyer/parley/internal/scenario"
	"github.com/samdwyer/parley/internal/telemetry"
	"github.com/samdwyer/parley/internal/ui"
	"github.com/samdwyer/parley/internal/view"
)

// ConsoleWindow is always open and hosts the roster.
const ConsoleWindow = "console"

type (
	messageWin = view.BufferedWin[chat.Message, *Event]
	rosterView = view.ListView[chat.Group, chat.Contact, *Event]
	windowSet  = view.FrameLayout[string, *Event]
)

// conversation is one window of the frame.
type conversation struct {
	layout *view.LinearLayout[*Event]
	buffer *messageWin
}

// Options configures a Client. Zero fields get defaults.
type Options struct {
	Config    *config.Config
	Scenario  *scenario.Scenario
	Transport Transport
	Tracer    trace.Tracer
	// Now stamps local messages. Defaults to time.Now.
	Now func() time.Time
}

// Client holds the widget tree and the state of the chat session.
type Client struct {
	scr       *ui.Screen
	cfg       *config.Config
	transport Transport
	tracer    trace.Tracer
	now       func() time.Time
	log       *slog.Logger

	root    *view.LinearLayout[*Event]
	windows *windowSet
	input   *view.Input[*Event]
	roster  *rosterView
	convs   map[string]*conversation

	mode    Mode
	queue   eventQueue
	running bool
}

// New builds the widget tree and seeds it from the scenario. Nothing is
// drawn until Start.
func New(scr *ui.Screen, opts Options) *Client {
	c := &Client{
		scr:       scr,
		cfg:       opts.Config,
		transport: opts.Transport,
		tracer:    opts.Tracer,
		now:       opts.Now,
		log:       logger.ComponentLogger("client"),
		convs:     make(map[string]*conversation),
	}
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	if c.transport == nil {
		c.transport = nopTransport{}
	}
	if c.tracer == nil {
		c.tracer = telemetry.NoopTracer()
	}
	if c.now == nil {
		c.now = time.Now
	}

	c.input = view.NewInput[*Event]().
		WithHandler(view.HandlerFunc[*view.Input[*Event], *Event](c.handleInput))
	c.input.SetHistoryLimit(c.cfg.HistoryLimit)

	c.windows = view.NewFrameLayout[string, *Event]().
		WithHandler(view.HandlerFunc[*windowSet, *Event](c.handleWindows))

	c.root = view.NewLinearLayout[*Event](view.Vertical, view.FillParent, view.FillParent).
		WithHandler(view.HandlerFunc[*view.LinearLayout[*Event], *Event](c.handleRoot))
	c.root.Push(c.windows)
	c.root.Push(c.input)

	c.roster = view.NewListView[chat.Group, chat.Contact, *Event]().WithUngrouped()
	if c.cfg.RosterWidth > 0 {
		c.roster.SetDimensions(view.Fixed(c.cfg.RosterWidth), view.FillParent)
	}
	c.open(ConsoleWindow)

	if opts.Scenario != nil {
		c.seed(opts.Scenario)
	}
	return c
}

func (c *Client) seed(s *scenario.Scenario) {
	now := c.now()
	for _, ct := range s.Ungrouped {
		c.roster.Insert(ct.Contact())
	}
	for _, g := range s.Groups {
		c.roster.AddGroup(chat.Group(g.Name))
		for _, ct := range g.Contacts {
			c.roster.InsertInGroup(chat.Group(g.Name), ct.Contact())
		}
	}
	console := c.convs[ConsoleWindow]
	for _, line := range s.Console {
		console.buffer.RecvMessage(c.scr, chat.Info(ConsoleWindow, line, now), false)
	}
	for _, conv := range s.Conversations {
		w := c.open(conv.Window)
		for _, m := range conv.Backlog(c.cfg.Nick, now) {
			w.buffer.RecvMessage(c.scr, m, false)
		}
	}
	c.log.Info("scenario loaded",
		"contacts", s.ContactCount(),
		"conversations", len(s.Conversations))
}

// open returns the named window, creating it without switching to it.
func (c *Client) open(name string) *conversation {
	if w, ok := c.convs[name]; ok {
		return w
	}
	w := &conversation{
		layout: view.NewLinearLayout[*Event](view.Horizontal, view.FillParent, view.FillParent),
		buffer: view.NewBufferedWin[chat.Message, *Event](),
	}
	w.layout.Push(w.buffer)
	if name == ConsoleWindow {
		w.layout.Push(c.roster)
	}
	c.convs[name] = w
	c.windows.Insert(name, w.layout)
	c.log.Info("window opened", "name", name)
	return w
}

// Start draws the first frame with the console selected.
func (c *Client) Start(ctx context.Context) {
	c.running = true
	c.relayout(ctx)
	c.windows.SetCurrent(c.scr, ConsoleWindow)
	c.settle(ctx)
}

// Run starts the client and dispatches terminal events and network
// messages until EventQuit, the end of events, or ctx is done.
func (c *Client) Run(ctx context.Context, events <-chan *Event) error {
	c.Start(ctx)
	incoming := c.transport.Incoming()
	for c.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c.Dispatch(ctx, ev)
		case m := <-incoming:
			c.Dispatch(ctx, &Event{Kind: EventMessage, Message: m})
		}
		if err := c.scr.Err(); err != nil {
			return fmt.Errorf("drawing to terminal: %w", err)
		}
	}
	return nil
}

// Dispatch delivers ev and every event posted while handling it, in order,
// then lays the tree out again if anything asked for it.
func (c *Client) Dispatch(ctx context.Context, ev *Event) {
	c.post(ev)
	for {
		next, ok := c.queue.pop()
		if !ok {
			break
		}
		c.handle(ctx, next)
	}
	c.settle(ctx)
}

func (c *Client) post(ev *Event) {
	c.queue.push(ev)
}

func (c *Client) handle(ctx context.Context, ev *Event) {
	_, span := c.tracer.Start(ctx, "client.dispatch",
		trace.WithAttributes(attribute.String("event.kind", ev.Kind.String())))
	defer span.End()
	c.log.Debug("dispatch", "kind", ev.Kind, "window", ev.Window)
	c.root.Event(c.scr, ev)
}

func (c *Client) settle(ctx context.Context) {
	if c.running && c.root.Dirty() {
		c.relayout(ctx)
	}
}

func (c *Client) relayout(ctx context.Context) {
	_, span := c.tracer.Start(ctx, "client.layout")
	defer span.End()

	w, h := c.scr.Size()
	span.SetAttributes(
		attribute.Int("screen.width", w),
		attribute.Int("screen.height", h),
	)
	c.root.Measure(view.Cells(w), view.Cells(h))
	c.root.Layout(0, 0)
	c.root.Redraw(c.scr)
}

func (c *Client) handleRoot(scr *ui.Screen, root *view.LinearLayout[*Event], ev *Event) {
	switch ev.Kind {
	case EventKey:
		switch ev.Key.Code {
		case KeyPageUp, KeyPageDown:
			c.windows.Event(scr, ev)
		case KeyInterrupt:
			c.post(&Event{Kind: EventQuit})
		default:
			c.input.Event(scr, ev)
		}
	case EventSendMessage:
		c.windows.Event(scr, ev)
		c.transport.Send(ev.Message)
	case EventMessage, EventChangeWindow, EventAddWindow, EventCloseWindow:
		c.windows.Event(scr, ev)
	case EventPassword:
		c.mode = ModeChat
		c.log.Info("password submitted", "length", utf8.RuneCountInString(ev.Text))
		c.notice(ConsoleWindow, "password received")
	case EventResize:
		if s, ok := scr.Backend().(interface{ Sync() }); ok {
			s.Sync()
		}
		c.log.Debug("resize", "width", ev.Width, "height", ev.Height)
		root.MarkDirty()
	case EventQuit:
		c.log.Info("quit")
		c.running = false
	}
}

func (c *Client) handleInput(scr *ui.Screen, in *view.Input[*Event], ev *Event) {
	if ev.Kind != EventKey {
		return
	}
	switch ev.Key.Code {
	case KeyRune:
		in.Key(scr, ev.Key.Rune)
	case KeyEnter:
		c.submit(scr, in)
	case KeyBackspace:
		in.Backspace(scr)
	case KeyDelete:
		in.Delete(scr)
	case KeyWordErase:
		in.BackwardDeleteWord(scr)
	case KeyHome:
		in.Home(scr)
	case KeyEnd:
		in.End(scr)
	case KeyLeft:
		in.Left(scr)
	case KeyRight:
		in.Right(scr)
	case KeyUp:
		in.Previous(scr)
	case KeyDown:
		in.Next(scr)
	}
}

func (c *Client) submit(scr *ui.Screen, in *view.Input[*Event]) {
	text, password := in.Validate(scr)
	switch {
	case password:
		c.post(&Event{Kind: EventPassword, Text: text})
	case strings.HasPrefix(text, "/"):
		c.command(scr, text)
	case strings.TrimSpace(text) == "":
	default:
		current := c.Current()
		if current == ConsoleWindow {
			c.fail(ConsoleWindow, "not in a conversation, open one with /win <name>")
			return
		}
		m := chat.NewMessage(chat.KindOutgoing, current, c.cfg.Nick, text, c.now())
		c.post(&Event{Kind: EventSendMessage, Message: m})
	}
}

func (c *Client) command(scr *ui.Screen, line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/win":
		if len(fields) != 2 {
			c.fail(ConsoleWindow, "usage: /win <name>")
			return
		}
		kind := EventAddWindow
		if _, ok := c.convs[fields[1]]; ok {
			kind = EventChangeWindow
		}
		c.post(&Event{Kind: kind, Window: fields[1]})
	case "/close":
		c.post(&Event{Kind: EventCloseWindow, Window: c.Current()})
	case "/password":
		c.mode = ModePassword
		c.input.Password(scr)
	case "/quit":
		c.post(&Event{Kind: EventQuit})
	default:
		c.log.Warn("unknown command", "command", fields[0])
		c.fail(ConsoleWindow, "unknown command: "+fields[0])
	}
}

func (c *Client) handleWindows(scr *ui.Screen, f *windowSet, ev *Event) {
	switch ev.Kind {
	case EventKey:
		w := c.convs[c.Current()]
		if w == nil {
			return
		}
		switch ev.Key.Code {
		case KeyPageUp:
			w.buffer.PageUp(scr)
		case KeyPageDown:
			w.buffer.PageDown(scr)
		}
	case EventMessage, EventSendMessage:
		m := ev.Message
		if m.Window == "" {
			m.Window = ConsoleWindow
		}
		w := c.open(m.Window)
		w.buffer.RecvMessage(scr, m, c.Current() == m.Window)
	case EventAddWindow:
		c.open(ev.Window)
		f.SetCurrent(scr, ev.Window)
	case EventChangeWindow:
		if !f.SetCurrent(scr, ev.Window) {
			c.fail(ConsoleWindow, "no window named "+ev.Window)
		}
	case EventCloseWindow:
		if ev.Window == ConsoleWindow {
			c.fail(ConsoleWindow, "the console cannot be closed")
			return
		}
		if _, ok := f.Remove(ev.Window); !ok {
			return
		}
		delete(c.convs, ev.Window)
		c.log.Info("window closed", "name", ev.Window)
		f.SetCurrent(scr, ConsoleWindow)
	}
}

func (c *Client) notice(window, text string) {
	c.post(&Event{Kind: EventMessage, Message: chat.Info(window, text, c.now())})
}

func (c *Client) fail(window, text string) {
	c.post(&Event{Kind: EventMessage, Message: chat.Error(window, text, c.now())})
}

// Current returns the name of the shown window.
func (c *Client) Current() string {
	name, _ := c.windows.Current()
	return name
}

// Windows returns the open windows in the order they were opened.
func (c *Client) Windows() []string {
	return c.windows.Keys()
}

// Messages returns the scrollback of a window.
func (c *Client) Messages(window string) []chat.Message {
	if w, ok := c.convs[window]; ok {
		return w.buffer.Messages()
	}
	return nil
}

// Mode returns what the input line is collecting.
func (c *Client) Mode() Mode { return c.mode }

// Running reports whether the client has not been asked to quit.
func (c *Client) Running() bool { return c.running }

// InputText returns the text being typed.
func (c *Client) InputText() string { return c.input.Text() }

type nopTransport struct{}

func (nopTransport) Send(chat.Message)             {}
func (nopTransport) Incoming() <-chan chat.Message { return nil }

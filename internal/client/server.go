package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samdwyer/parley/internal/chat"
	"github.com/samdwyer/parley/internal/logger"
)

// Transport carries messages to and from the chat network.
type Transport interface {
	// Send hands an outgoing message to the network.
	Send(m chat.Message)
	// Incoming yields acknowledgements and messages from others.
	Incoming() <-chan chat.Message
}

// EchoWindow is the contact the loopback server answers for.
const EchoWindow = "echo"

// Loopback is an in-process server. It acknowledges every message after a
// delay and answers messages sent to EchoWindow.
type Loopback struct {
	delay    time.Duration
	now      func() time.Time
	incoming chan chat.Message
	ctx      context.Context
	wg       sync.WaitGroup
	log      *slog.Logger
}

// NewLoopback creates a server whose goroutines stop when ctx ends.
func NewLoopback(ctx context.Context, delay time.Duration) *Loopback {
	return &Loopback{
		delay:    delay,
		now:      time.Now,
		incoming: make(chan chat.Message, 64),
		ctx:      ctx,
		log:      logger.ComponentLogger("loopback"),
	}
}

// Send acknowledges m asynchronously.
func (l *Loopback) Send(m chat.Message) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if !l.wait() {
			return
		}
		l.deliver(m)
		if m.Window == EchoWindow {
			l.deliver(chat.NewMessage(chat.KindIncoming, EchoWindow, EchoWindow, m.Body, l.now()))
		}
	}()
}

func (l *Loopback) wait() bool {
	if l.delay <= 0 {
		return l.ctx.Err() == nil
	}
	t := time.NewTimer(l.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-l.ctx.Done():
		return false
	}
}

func (l *Loopback) deliver(m chat.Message) {
	select {
	case l.incoming <- m:
		l.log.Debug("delivered", "id", m.ID, "window", m.Window, "kind", m.Kind)
	case <-l.ctx.Done():
	}
}

// Incoming returns the delivery channel.
func (l *Loopback) Incoming() <-chan chat.Message {
	return l.incoming
}

// Wait blocks until every pending delivery finished.
func (l *Loopback) Wait() {
	l.wg.Wait()
}

package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/parley/internal/chat"
)

func TestLoopbackAcknowledges(t *testing.T) {
	l := NewLoopback(context.Background(), 0)
	sent := chat.NewMessage(chat.KindOutgoing, "alice", "me", "hi", time.Now())

	l.Send(sent)

	assert.Equal(t, sent, receive(t, l))
	l.Wait()
	assert.Empty(t, l.Incoming())
}

func TestLoopbackEchoReplies(t *testing.T) {
	l := NewLoopback(context.Background(), time.Millisecond)
	sent := chat.NewMessage(chat.KindOutgoing, EchoWindow, "me", "ping", time.Now())

	l.Send(sent)

	assert.Equal(t, sent, receive(t, l))
	reply := receive(t, l)
	assert.Equal(t, chat.KindIncoming, reply.Kind)
	assert.Equal(t, EchoWindow, reply.Window)
	assert.Equal(t, EchoWindow, reply.From)
	assert.Equal(t, "ping", reply.Body)
	assert.NotEqual(t, sent.ID, reply.ID)
}

func TestLoopbackStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoopback(ctx, time.Hour)

	l.Send(chat.NewMessage(chat.KindOutgoing, "alice", "me", "lost", time.Now()))
	cancel()

	done := make(chan struct{})
	go func() {
		l.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "loopback did not stop")
	}
	assert.Empty(t, l.Incoming())
}

package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mavera/backoffice/internal/core/domain"
)

type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	fail   bool
	block  chan struct{}
}

func (s *recordingSink) Persist(_ context.Context, e domain.AuditEvent) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("store down")
	}
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) snapshot() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEvent(nil), s.events...)
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(3, sink, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 50; i++ {
		d.Record(domain.AuditEvent{ActorID: fmt.Sprintf("u-%d", i%5), Action: domain.AuditLogin, Subject: fmt.Sprint(i)})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	assert.Len(t, sink.snapshot(), 50)
}

func TestDispatcher_PreservesPerActorOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(4, sink, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 100; i++ {
		d.Record(domain.AuditEvent{ActorID: "u-001", Action: domain.AuditAccessDenied, Subject: fmt.Sprint(i)})
	}
	require.NoError(t, d.Close(context.Background()))

	events := sink.snapshot()
	require.Len(t, events, 100)
	for i, e := range events {
		assert.Equal(t, fmt.Sprint(i), e.Subject)
	}
}

func TestDispatcher_RecordAfterCloseIsDropped(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(1, sink, zerolog.Nop())
	d.Start(context.Background())
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() {
		d.Record(domain.AuditEvent{Action: domain.AuditLogout})
	})
	assert.Empty(t, sink.snapshot())
	assert.NoError(t, d.Close(context.Background()), "second close is a no-op")
}

func TestDispatcher_FullQueueDoesNotBlock(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(1, sink, zerolog.Nop())
	d.Start(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(domain.AuditEvent{Action: domain.AuditLogin})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}

	close(sink.block)
	require.NoError(t, d.Close(context.Background()))
	assert.LessOrEqual(t, len(sink.snapshot()), channelBuffer+1)
}

func TestDispatcher_SinkErrorsAreNotFatal(t *testing.T) {
	sink := &recordingSink{fail: true}
	d := NewDispatcher(2, sink, zerolog.Nop())
	d.Start(context.Background())

	d.Record(domain.AuditEvent{Action: domain.AuditLogin})
	assert.NoError(t, d.Close(context.Background()))
}

func TestDispatcher_CloseHonoursContext(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	defer close(sink.block)
	d := NewDispatcher(1, sink, zerolog.Nop())
	d.Start(context.Background())
	d.Record(domain.AuditEvent{Action: domain.AuditLogin})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
}

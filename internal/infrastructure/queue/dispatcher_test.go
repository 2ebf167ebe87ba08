package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func newRecordingRepo(want int) *recordingRepo {
	return &recordingRepo{done: make(chan struct{}), want: want}
}

func (r *recordingRepo) Insert(ctx context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func (r *recordingRepo) recorded() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

func TestDispatcher_PersistsEnqueuedEvents(t *testing.T) {
	repo := newRecordingRepo(3)
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, e := range []domain.AuditEvent{
		{Type: domain.AuditLoginFailed, Email: "a@example.com", Timestamp: time.Now()},
		{Type: domain.AuditLoginSuccess, Email: "b@example.com", Timestamp: time.Now()},
		{Type: domain.AuditAccountLocked, Email: "a@example.com", Timestamp: time.Now()},
	} {
		d.Enqueue(e)
	}

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events, got %d", len(repo.recorded()))
	}
}

func TestDispatcher_SameAccountSameWorker(t *testing.T) {
	d := NewDispatcher(4, newRecordingRepo(0), zerolog.Nop())

	first := d.shardIndex("owner@example.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("owner@example.com"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}
}

func TestDispatcher_OrderPreservedPerAccount(t *testing.T) {
	repo := newRecordingRepo(5)
	d := NewDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		d.Enqueue(domain.AuditEvent{
			Type:   domain.AuditLoginFailed,
			Email:  "owner@example.com",
			Detail: string(rune('a' + i)),
		})
	}

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events")
	}

	events := repo.recorded()
	for i, e := range events {
		if e.Detail != string(rune('a'+i)) {
			t.Fatalf("out of order at %d: %+v", i, events)
		}
	}
}

package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinyboard/account-registry/internal/core/ports"
)

type recordingActivityService struct {
	mu      sync.Mutex
	touches []ports.ActivityTouch
}

func (s *recordingActivityService) Process(_ context.Context, touch ports.ActivityTouch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touches = append(s.touches, touch)
	return nil
}

func (s *recordingActivityService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.touches)
}

func TestDispatcher_ProcessesAllTouches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &recordingActivityService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	names := []string{"alpha1", "mid1", "zeta1", "alpha1", "mid1"}
	for _, name := range names {
		d.Enqueue(ports.ActivityTouch{Username: name, Timestamp: time.Now().UTC()})
	}

	deadline := time.Now().Add(2 * time.Second)
	for svc.count() < len(names) {
		if time.Now().After(deadline) {
			t.Fatalf("processed %d of %d touches before deadline", svc.count(), len(names))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDispatcher_ShardIsStablePerUsername(t *testing.T) {
	d := NewDispatcher(8, &recordingActivityService{}, zerolog.Nop())

	for _, name := range []string{"alpha1", "mid1", "zeta1"} {
		first := d.shardIndex(name)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(name); got != first {
				t.Fatalf("shardIndex(%q) not stable: %d vs %d", name, got, first)
			}
		}
	}
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	svc := &recordingActivityService{}
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(ctx)
	cancel()

	// Give workers a moment to observe cancellation, then verify later
	// touches are no longer drained.
	time.Sleep(20 * time.Millisecond)
	before := svc.count()
	d.Enqueue(ports.ActivityTouch{Username: "alpha1", Timestamp: time.Now().UTC()})
	time.Sleep(20 * time.Millisecond)

	if svc.count() != before {
		t.Fatalf("worker processed a touch after cancellation")
	}
}

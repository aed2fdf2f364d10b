package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quoteflow/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu    sync.Mutex
	calls []string
	err   error
	block chan struct{}
}

func (s *recordingSender) SendQuoteViewed(ctx context.Context, quote entities.Quote, _ entities.Detailer, _ time.Time) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, quote.ID)
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

var (
	quote    = entities.Quote{ID: "q-1", Title: "Full detail", CustomerName: "Bo"}
	detailer = entities.Detailer{ID: "det-1", Name: "Ana", Email: "ana@shop.com", FCMToken: "fcm-token"}
)

func TestDispatcher_FansOutToConfiguredChannels(t *testing.T) {
	push, email := &recordingSender{}, &recordingSender{}
	d := NewDispatcher(Config{Workers: 2, QueueSize: 8}, push, email)
	d.Start()

	d.NotifyQuoteViewed(context.Background(), quote, detailer, time.Now())
	d.Close()

	assert.Equal(t, 1, push.count())
	assert.Equal(t, 1, email.count())
}

func TestDispatcher_SkipsChannelsTheDetailerLacks(t *testing.T) {
	push, email := &recordingSender{}, &recordingSender{}
	d := NewDispatcher(Config{}, push, email)
	d.Start()

	d.NotifyQuoteViewed(context.Background(), quote, entities.Detailer{ID: "det-2", Email: "x@y.com"}, time.Now())
	d.Close()

	assert.Equal(t, 0, push.count())
	assert.Equal(t, 1, email.count())
}

func TestDispatcher_NilSenderDisablesChannel(t *testing.T) {
	email := &recordingSender{}
	d := NewDispatcher(Config{}, nil, email)
	d.Start()

	d.NotifyQuoteViewed(context.Background(), quote, detailer, time.Now())
	d.Close()

	assert.Equal(t, 1, email.count())
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	push := &recordingSender{err: errors.New("fcm down")}
	email := &recordingSender{}
	d := NewDispatcher(Config{Workers: 1}, push, email)
	d.Start()

	d.NotifyQuoteViewed(context.Background(), quote, detailer, time.Now())
	d.Close()

	assert.Equal(t, 1, push.count())
	assert.Equal(t, 1, email.count())
}

func TestDispatcher_FullQueueDropsWithoutBlocking(t *testing.T) {
	push := &recordingSender{block: make(chan struct{})}
	d := NewDispatcher(Config{Workers: 1, QueueSize: 1}, push, nil)
	d.Start()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.NotifyQuoteViewed(context.Background(), quote, detailer, time.Now())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}

	close(push.block)
	d.Close()
	// One in flight on the worker plus at most one buffered.
	assert.LessOrEqual(t, push.count(), 2)
	assert.GreaterOrEqual(t, push.count(), 1)
}

func TestDispatcher_DetachesFromRequestContext(t *testing.T) {
	var got error
	var wg sync.WaitGroup
	wg.Add(1)
	sender := senderFunc(func(ctx context.Context) error {
		defer wg.Done()
		got = ctx.Err()
		return nil
	})
	d := NewDispatcher(Config{}, sender, nil)

	ctx, cancel := context.WithCancel(context.Background())
	d.NotifyQuoteViewed(ctx, quote, detailer, time.Now())
	cancel()
	d.Start()
	wg.Wait()
	d.Close()

	require.NoError(t, got)
}

func TestDispatcher_NotifyAfterCloseIsDropped(t *testing.T) {
	push := &recordingSender{}
	d := NewDispatcher(Config{}, push, nil)
	d.Start()
	d.Close()
	d.Close()

	d.NotifyQuoteViewed(context.Background(), quote, detailer, time.Now())
	assert.Equal(t, 0, push.count())
}

type senderFunc func(ctx context.Context) error

func (f senderFunc) SendQuoteViewed(ctx context.Context, _ entities.Quote, _ entities.Detailer, _ time.Time) error {
	return f(ctx)
}

package aicache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Load(_ context.Context, fingerprint string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[fingerprint]
	return v, ok, nil
}

func (m *memStore) Save(_ context.Context, _, fingerprint string, result []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[fingerprint] = result
	return nil
}

func (m *memStore) Delete(_ context.Context, fingerprint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, fingerprint)
	return nil
}

func TestGetOrComputeInvokesComputeOnce(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop(), time.Second)

	var calls int32
	compute := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("value"), nil
	}

	for i := 0; i < 2; i++ {
		got, err := svc.GetOrCompute(context.Background(), "test", "fp-1", compute)
		if err != nil {
			t.Fatalf("GetOrCompute: %v", err)
		}
		if string(got) != "value" {
			t.Fatalf("got %q, want %q", got, "value")
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("compute invoked %d times, want 1", n)
	}
}

func TestGetOrComputeSingleFlight(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop(), time.Second)

	var calls int32
	release := make(chan struct{})
	compute := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte("shared"), nil
	}

	const waiters = 8
	var wg sync.WaitGroup
	results := make([]string, waiters)
	errs := make([]error, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := svc.GetOrCompute(context.Background(), "test", "fp-shared", compute)
			results[i], errs[i] = string(got), err
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("compute invoked %d times for concurrent callers, want 1", n)
	}
	for i := 0; i < waiters; i++ {
		if errs[i] != nil {
			t.Fatalf("waiter %d: %v", i, errs[i])
		}
		if results[i] != "shared" {
			t.Fatalf("waiter %d got %q", i, results[i])
		}
	}
}

func TestGetOrComputeFailureNotCached(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop(), time.Second)

	wantErr := errors.New("backend down")
	var calls int32
	compute := func(ctx context.Context) ([]byte, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, wantErr
		}
		return []byte("recovered"), nil
	}

	if _, err := svc.GetOrCompute(context.Background(), "test", "fp-fail", compute); !errors.Is(err, wantErr) {
		t.Fatalf("first call error = %v, want %v", err, wantErr)
	}

	got, err := svc.GetOrCompute(context.Background(), "test", "fp-fail", compute)
	if err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if string(got) != "recovered" {
		t.Fatalf("retry got %q, want %q", got, "recovered")
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("compute invoked %d times, want 2", n)
	}
}

func TestGetOrComputeCallerCancellationKeepsSharedFlight(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, zap.NewNop(), time.Second)

	started := make(chan struct{})
	release := make(chan struct{})
	compute := func(ctx context.Context) ([]byte, error) {
		close(started)
		select {
		case <-release:
			return []byte("survived"), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.GetOrCompute(ctx, "test", "fp-cancel", compute)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("cancelled caller error = %v, want context.Canceled", err)
		}
	}()

	<-started
	cancel()
	wg.Wait()

	// The detached computation keeps running and its result lands in the
	// durable store.
	close(release)
	deadline := time.After(time.Second)
	for {
		if v, ok, _ := store.Load(context.Background(), "fp-cancel"); ok {
			if string(v) != "survived" {
				t.Fatalf("stored %q, want %q", v, "survived")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("computation result never stored after caller cancellation")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestInvalidateForcesRecompute(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop(), time.Second)

	var calls int32
	compute := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("v"), nil
	}

	if _, err := svc.GetOrCompute(context.Background(), "test", "fp-inv", compute); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if err := svc.Invalidate(context.Background(), "fp-inv"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := svc.GetOrCompute(context.Background(), "test", "fp-inv", compute); err != nil {
		t.Fatalf("GetOrCompute after invalidate: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("compute invoked %d times, want 2", n)
	}
}

func TestFingerprintStability(t *testing.T) {
	a := Fingerprint("stmt-1", NormalizeText("  Ik ben het  EENS "), "p1", "p2")
	b := Fingerprint("stmt-1", NormalizeText("ik ben het eens"), "p1", "p2")
	if a != b {
		t.Fatalf("equivalent inputs produced different fingerprints")
	}

	c := Fingerprint("stmt-1", "ab", "c")
	d := Fingerprint("stmt-1", "a", "bc")
	if c == d {
		t.Fatalf("distinct part lists collided")
	}
}

package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/deidaraiorek/termrank/internal/worker"
)

func TestPoolRunsEveryJobOnce(t *testing.T) {
	p := worker.New(4, 8)
	p.Start(context.Background())

	const jobs = 500
	var hits [jobs]int32
	for i := 0; i < jobs; i++ {
		i := i
		if err := p.Submit(func(ctx context.Context) error {
			atomic.AddInt32(&hits[i], 1)
			return nil
		}); err != nil {
			t.Fatalf("Submit(%d) error: %v", i, err)
		}
	}

	if err := p.Wait(); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("job %d ran %d times, want 1", i, h)
		}
	}
}

func TestPoolReturnsFirstError(t *testing.T) {
	p := worker.New(2, 0)
	p.Start(context.Background())

	boom := errors.New("boom")
	_ = p.Submit(func(ctx context.Context) error { return boom })

	if err := p.Wait(); !errors.Is(err, boom) {
		t.Errorf("Wait() error = %v, want %v", err, boom)
	}
}

func TestPoolSubmitAfterWait(t *testing.T) {
	p := worker.New(1, 1)
	p.Start(context.Background())
	if err := p.Wait(); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}

	err := p.Submit(func(ctx context.Context) error { return nil })
	if !errors.Is(err, worker.ErrPoolClosed) {
		t.Errorf("Submit after Wait error = %v, want ErrPoolClosed", err)
	}
}

func TestPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := worker.New(1, 1)
	p.Start(ctx)
	cancel()

	if err := p.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}

func TestNewDefaults(t *testing.T) {
	p := worker.New(0, 0)
	p.Start(context.Background())

	var ran int32
	_ = p.Submit(func(ctx context.Context) error {
		atomic.StoreInt32(&ran, 1)
		return nil
	})
	if err := p.Wait(); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&ran) != 1 {
		t.Error("job did not run with default pool size")
	}
}

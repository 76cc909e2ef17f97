package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWaitReturnsResult(t *testing.T) {
	tk := Go(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	v, err := tk.Wait()
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if v != 42 {
		t.Errorf("Wait() = %d, want 42", v)
	}

	select {
	case <-tk.Done():
	default:
		t.Error("Done() should be closed after Wait")
	}
}

func TestCancelStopsTask(t *testing.T) {
	started := make(chan struct{})
	tk := Go(context.Background(), func(ctx context.Context) (struct{}, error) {
		close(started)
		<-ctx.Done()
		return struct{}{}, ctx.Err()
	})

	<-started
	tk.Cancel()

	_, err := tk.Wait()
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}

func TestParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	tk := Go(parent, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	cancel()
	if _, err := tk.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}

func TestPanicBecomesError(t *testing.T) {
	tk := Go(context.Background(), func(ctx context.Context) (int, error) {
		panic("boom")
	})

	_, err := tk.Wait()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Wait() error = %v, want panic error", err)
	}
}

func TestAwaitTimesOut(t *testing.T) {
	release := make(chan struct{})
	tk := Go(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := tk.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Await() error = %v, want DeadlineExceeded", err)
	}

	close(release)
	if v, err := tk.Wait(); err != nil || v != 1 {
		t.Errorf("Wait() = %d, %v", v, err)
	}
}

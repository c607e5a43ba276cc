package shared

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestFuture(t *testing.T) {
	t.Run("Resolve only once", func(t *testing.T) {
		f := NewFuture[int]()
		f.Resolve(1, nil)
		f.Resolve(2, errors.New("ignored"))

		v, err := f.Wait(context.Background())
		if err != nil || v != 1 {
			t.Errorf("expected (1, nil), got (%d, %v)", v, err)
		}
	})

	t.Run("Wait honours context", func(t *testing.T) {
		f := NewFuture[string]()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		if _, err := f.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected deadline exceeded, got %v", err)
		}
	})

	t.Run("Go", func(t *testing.T) {
		f := Go(func() (string, error) { return "ok", nil })
		v, err := f.Wait(context.Background())
		if err != nil || v != "ok" {
			t.Errorf("expected (ok, nil), got (%s, %v)", v, err)
		}
	})

	t.Run("Then fires exactly once", func(t *testing.T) {
		var calls atomic.Int32
		fired := make(chan struct{})

		f := NewFuture[int]()
		f.Then(func(v int, err error) {
			calls.Add(1)
			close(fired)
		})
		f.Resolve(7, nil)
		f.Resolve(8, nil)

		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("callback did not fire")
		}
		time.Sleep(10 * time.Millisecond)
		if calls.Load() != 1 {
			t.Errorf("expected exactly one callback, got %d", calls.Load())
		}
	})

	t.Run("Resolved", func(t *testing.T) {
		want := errors.New("boom")
		f := Resolved(0, want)
		select {
		case <-f.Done():
		default:
			t.Fatal("expected resolved future to be done")
		}
		if _, err := f.Wait(context.Background()); !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
	})
}

package loop_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autoserve/autoserve/pkg/loop"
)

func TestStart(t *testing.T) {
	t.Run("it repeats the task and threads the value through", func(t *testing.T) {
		ctx := context.Background()

		actual, err := loop.Start(
			ctx, 0, func(_ context.Context, v int) (int, loop.Next) {
				v += 1
				if 10 <= v {
					return v, loop.Break(nil)
				}
				return v, loop.Continue(0)
			},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if actual != 10 {
			t.Errorf("value = %d, want 10", actual)
		}
	})

	t.Run("it breaks with the error the task returns", func(t *testing.T) {
		expectedError := errors.New("expected error")

		actual, err := loop.Start(
			ctx(t), 0, func(_ context.Context, v int) (int, loop.Next) {
				if v == 3 {
					return v, loop.Break(expectedError)
				}
				return v + 1, loop.Continue(0)
			},
		)
		if !errors.Is(err, expectedError) {
			t.Errorf("unexpected error: %v", err)
		}
		if actual != 3 {
			t.Errorf("value = %d, want 3 (last value should be returned on error)", actual)
		}
	})

	t.Run("it stops with ctx.Err when the context gets done", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())

		_, err := loop.Start(
			cctx, 0, func(_ context.Context, v int) (int, loop.Next) {
				if v == 2 {
					cancel()
				}
				return v + 1, loop.Continue(time.Millisecond)
			},
		)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("it does not run the task at all when the context is already done", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()

		ran := false
		_, err := loop.Start(
			cctx, 0, func(_ context.Context, v int) (int, loop.Next) {
				ran = true
				return v, loop.Break(nil)
			},
		)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
		if ran {
			t.Error("task ran, unexpectedly")
		}
	})

	t.Run("it passes a deadlined context when WithTimeout is given", func(t *testing.T) {
		timeout := 100 * time.Millisecond

		_, err := loop.Start(
			ctx(t), 0, func(c context.Context, v int) (int, loop.Next) {
				now := time.Now()
				if deadline, ok := c.Deadline(); !ok {
					t.Error("deadline is not set")
				} else if timeout < deadline.Sub(now) {
					t.Errorf("deadline %s is later than now+timeout %s", deadline, now.Add(timeout))
				}
				return v, loop.Break(nil)
			},
			loop.WithTimeout(timeout),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

package operation

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.viam.com/test"
)

func TestSingleOperationManager(t *testing.T) {
	ctx := context.Background()
	som := SingleOperationManager{}

	test.That(t, som.OpRunning(), test.ShouldBeFalse)

	t.Run("nested operation does not cancel parent", func(t *testing.T) {
		ctx1, close1 := som.New(ctx)
		defer close1()
		ctx2, close2 := som.New(ctx1)
		defer close2()
		test.That(t, ctx1.Err(), test.ShouldBeNil)
		test.That(t, som.IsCurrent(ctx2), test.ShouldBeTrue)
	})
	test.That(t, som.OpRunning(), test.ShouldBeFalse)

	t.Run("new operation cancels the running one", func(t *testing.T) {
		first, done1 := som.New(ctx)
		defer done1()
		test.That(t, som.IsCurrent(first), test.ShouldBeTrue)
		test.That(t, som.Preempted(first), test.ShouldBeFalse)

		second, done2 := som.New(ctx)
		defer done2()
		test.That(t, first.Err(), test.ShouldEqual, context.Canceled)
		test.That(t, second.Err(), test.ShouldBeNil)
		test.That(t, som.IsCurrent(first), test.ShouldBeFalse)
		test.That(t, som.Preempted(first), test.ShouldBeTrue)
		test.That(t, som.IsCurrent(second), test.ShouldBeTrue)
		test.That(t, som.Preempted(second), test.ShouldBeFalse)
	})

	t.Run("finished operations are not preempted", func(t *testing.T) {
		opCtx, done := som.New(ctx)
		done()
		test.That(t, som.Preempted(opCtx), test.ShouldBeFalse)
		test.That(t, som.IsCurrent(opCtx), test.ShouldBeFalse)
		test.That(t, som.Preempted(ctx), test.ShouldBeFalse)
		test.That(t, som.IsCurrent(ctx), test.ShouldBeFalse)
	})

	t.Run("cancelling on different context works", func(t *testing.T) {
		res := int32(0)
		started := make(chan struct{})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			var once sync.Once
			err := som.WaitForSuccess(context.Background(), time.Millisecond, func(ctx context.Context) (bool, error) {
				once.Do(func() { close(started) })
				return false, nil
			})
			if err == nil {
				atomic.StoreInt32(&res, 1)
			}
		}()

		<-started
		test.That(t, som.OpRunning(), test.ShouldBeTrue)
		som.CancelRunning(ctx)

		wg.Wait()
		test.That(t, atomic.LoadInt32(&res), test.ShouldEqual, int32(0))
		test.That(t, som.OpRunning(), test.ShouldBeFalse)
	})

	t.Run("WaitForSuccess", func(t *testing.T) {
		count := int64(0)

		err := som.WaitForSuccess(
			ctx,
			time.Millisecond,
			func(ctx context.Context) (bool, error) {
				if atomic.AddInt64(&count, 1) == 5 {
					return true, nil
				}
				return false, nil
			},
		)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, count, test.ShouldEqual, int64(5))
	})
}

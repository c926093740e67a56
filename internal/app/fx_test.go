package app

import (
	"context"
	"testing"
	"time"
)

func TestWorkerPoolHookOutlivesStartContext(t *testing.T) {
	t.Parallel()

	poolCtxCh := make(chan context.Context, 1)
	hook := workerPoolHook(func(ctx context.Context) {
		poolCtxCh <- ctx
		<-ctx.Done()
	})

	// The start hook receives a short-lived context, the way fx hands its
	// start context to OnStart.
	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelStart()
	if err := hook.OnStart(startCtx); err != nil {
		t.Fatalf("OnStart error: %v", err)
	}

	poolCtx := <-poolCtxCh
	<-startCtx.Done()

	// The pool must keep running after the start context expires.
	select {
	case <-poolCtx.Done():
		t.Fatal("worker pool context cancelled by start context expiry")
	case <-time.After(50 * time.Millisecond):
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), time.Second)
	defer cancelStop()
	if err := hook.OnStop(stopCtx); err != nil {
		t.Fatalf("OnStop error: %v", err)
	}

	select {
	case <-poolCtx.Done():
	default:
		t.Fatal("worker pool context not cancelled on stop")
	}
}

func TestWorkerPoolHookStopWaitsForPoolExit(t *testing.T) {
	t.Parallel()

	exited := make(chan struct{})
	hook := workerPoolHook(func(ctx context.Context) {
		<-ctx.Done()
		close(exited)
	})

	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("OnStart error: %v", err)
	}
	if err := hook.OnStop(context.Background()); err != nil {
		t.Fatalf("OnStop error: %v", err)
	}

	select {
	case <-exited:
	default:
		t.Fatal("OnStop returned before the pool loop exited")
	}
}

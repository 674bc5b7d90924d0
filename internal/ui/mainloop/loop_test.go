package mainloop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoop_RunPendingRunsOneTurnInOrder(t *testing.T) {
	l := New(context.Background())

	var got []int
	l.Post(func() {
		got = append(got, 1)
		l.Post(func() { got = append(got, 3) })
	})
	l.Post(func() { got = append(got, 2) })

	assert.Equal(t, 2, l.RunPending())
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 1, l.Pending())

	assert.Equal(t, 1, l.RunUntilIdle(10))
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestLoop_PanickingTaskDoesNotStopTurn(t *testing.T) {
	l := New(context.Background())

	ran := false
	l.Post(func() { panic("boom") })
	l.Post(func() { ran = true })
	l.RunPending()

	assert.True(t, ran)
}

func TestLoop_InvokeRunsOnLoopGoroutine(t *testing.T) {
	l := New(context.Background())
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Run(ctx)
	}()

	counter := 0
	for i := 0; i < 50; i++ {
		require.NoError(t, l.Invoke(ctx, func() error {
			counter++
			return nil
		}))
	}
	wantErr := errors.New("failed")
	err := l.Invoke(ctx, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 50, counter)

	cancel()
	wg.Wait()
}

func TestLoop_CloseStopsRun(t *testing.T) {
	l := New(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	ran := make(chan struct{})
	l.Post(func() { close(ran) })
	<-ran
	l.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}

	assert.ErrorIs(t, l.Invoke(context.Background(), func() error { return nil }), ErrLoopClosed)
	l.Post(func() { t.Error("posted after close") })
	assert.Equal(t, 0, l.RunPending())
}

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_RunsJobsInSubmissionOrder(t *testing.T) {
	w := NewWorker(64)
	defer w.Close()

	var mu sync.Mutex
	var order []int
	futures := make([]*Future[int], 0, 50)
	for i := 0; i < 50; i++ {
		futures = append(futures, Submit(w, func() (int, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return i * 2, nil
		}))
	}

	for i, f := range futures {
		v, err := f.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i*2, v)
	}
	for i := range order {
		assert.Equal(t, i, order[i])
	}
}

func TestWorker_JobsNeverOverlap(t *testing.T) {
	w := NewWorker(8)
	defer w.Close()

	var active, maxActive int
	var mu sync.Mutex
	var futures []*Future[struct{}]
	for i := 0; i < 20; i++ {
		futures = append(futures, Submit(w, func() (struct{}, error) {
			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
			return struct{}{}, nil
		}))
	}
	for _, f := range futures {
		_, err := f.Await(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, maxActive)
}

func TestWorker_ResultIsNotDeliveredInsideSubmit(t *testing.T) {
	w := NewWorker(1)
	defer w.Close()

	gate := make(chan struct{})
	f := Submit(w, func() (string, error) {
		<-gate
		return "done", nil
	})

	select {
	case <-f.Done():
		t.Fatal("result delivered before the job ran")
	default:
	}

	close(gate)
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}

func TestWorker_PropagatesErrors(t *testing.T) {
	w := NewWorker(1)
	defer w.Close()

	boom := errors.New("boom")
	_, err := Submit(w, func() (int, error) { return 0, boom }).Await(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFuture_AwaitHonoursContext(t *testing.T) {
	w := NewWorker(1)
	defer w.Close()

	gate := make(chan struct{})
	f := Submit(w, func() (int, error) {
		<-gate
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// the job still completes
	close(gate)
	r := <-f.Done()
	assert.Equal(t, 1, r.Value)
}

func TestWorker_CloseDrainsAndRejects(t *testing.T) {
	w := NewWorker(4)

	ran := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		Submit(w, func() (int, error) {
			ran <- struct{}{}
			return 0, nil
		})
	}
	w.Close()
	assert.Len(t, ran, 3)

	_, err := Submit(w, func() (int, error) { return 0, nil }).Await(context.Background())
	assert.ErrorIs(t, err, ErrWorkerClosed)

	assert.NotPanics(t, w.Close)
}

package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewQueue_Success tests the queue factory function.
func TestNewQueue_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()

	assert.NotNil(t, q)
	assert.Empty(t, q.items)
	assert.Empty(t, q.success)
	assert.Empty(t, q.skipped)
	assert.NotNil(t, q.inProgress)
	assert.Equal(t, 0, q.head)
	assert.False(t, q.hasStarted)
	assert.False(t, q.hasFinished)
}

// TestEnqueueDequeue_Success tests enqueueing and dequeueing.
func TestEnqueueDequeue_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()

	q.Enqueue("item1", "item2", "item3")

	assert.Len(t, q.items, 3)
	assert.Equal(t, []string{"item1", "item2", "item3"}, q.items)

	item, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "item1", item)
	assert.Equal(t, 1, q.head)

	item, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "item2", item)
	assert.Equal(t, 2, q.head)

	item, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "item3", item)
	assert.Equal(t, 3, q.head)

	item, ok = q.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, "", item)
}

// TestGetSuccessful_Success tests returning the success items.
func TestGetSuccessful_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()

	success := q.GetSuccessful()
	assert.Empty(t, success)

	q.SetSuccess(1, 2, 3)
	success = q.GetSuccessful()
	assert.Equal(t, []int{1, 2, 3}, success)

	// Verify we get a copy, not a reference
	success[0] = 999
	newSuccess := q.GetSuccessful()
	assert.Equal(t, []int{1, 2, 3}, newSuccess)
}

// TestSetProcessing_Success tests setting items as processing.
func TestSetProcessing_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()

	assert.Empty(t, q.inProgress)

	q.SetProcessing("item1", "item2")
	assert.Len(t, q.inProgress, 2)

	_, exists := q.inProgress["item1"]
	assert.True(t, exists)

	_, exists = q.inProgress["item2"]
	assert.True(t, exists)
}

// TestSetSuccess_Success tests setting items as successful.
func TestSetSuccess_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()

	q.SetProcessing("item1", "item2")
	assert.Len(t, q.inProgress, 2)

	q.SetSuccess("item1")
	assert.Contains(t, q.success, "item1")

	assert.Len(t, q.inProgress, 1)

	_, exists := q.inProgress["item1"]
	assert.False(t, exists)

	_, exists = q.inProgress["item2"]
	assert.True(t, exists)
}

// TestSetSkipped_Success tests setting items as skipped.
func TestSetSkipped_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()

	q.SetProcessing("item1", "item2")
	assert.Len(t, q.inProgress, 2)

	q.SetSkipped("item1")
	assert.Contains(t, q.skipped, "item1")

	assert.Len(t, q.inProgress, 1)

	_, exists := q.inProgress["item1"]
	assert.False(t, exists)

	_, exists = q.inProgress["item2"]
	assert.True(t, exists)
}

// TestProgress_Success tests the progress being reported.
func TestProgress_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()

	progress := q.Progress()
	assert.False(t, progress.HasStarted)
	assert.False(t, progress.HasFinished)
	assert.Zero(t, progress.StartTime, "start time should be zero")
	assert.Zero(t, progress.FinishTime, "finish time should be zero")
	assert.Zero(t, progress.ETA, "eta should be zero")
	assert.Zero(t, progress.TimeLeft, "time left should be zero")
	assert.InDelta(t, 0.0, progress.ProgressPct, 0)
	assert.Equal(t, 0, progress.TotalItems)
	assert.Equal(t, 0, progress.ProcessedItems)
	assert.Equal(t, 0, progress.SuccessItems)
	assert.Equal(t, 0, progress.SkippedItems)
	assert.Equal(t, 0, progress.InProgressItems)

	q.Enqueue(1, 2, 3, 4)
	q.Dequeue()
	q.SetSuccess(1)
	q.Dequeue()
	q.SetSkipped(2)
	q.Dequeue()
	q.SetSkipped(3)

	progress = q.Progress()
	assert.True(t, progress.HasStarted)
	assert.False(t, progress.HasFinished)
	assert.NotZero(t, progress.StartTime, "start time should not be zero")
	assert.Zero(t, progress.FinishTime, "finish time should be zero")
	assert.NotZero(t, progress.ETA, "eta should not be zero")
	assert.NotZero(t, progress.TimeLeft, "time left should not be zero")
	assert.InDelta(t, 75.0, progress.ProgressPct, 0)
	assert.Equal(t, 4, progress.TotalItems)
	assert.Equal(t, 3, progress.ProcessedItems)
	assert.Equal(t, 1, progress.SuccessItems)
	assert.Equal(t, 2, progress.SkippedItems)
	assert.Equal(t, 0, progress.InProgressItems)

	q.Dequeue()
	q.SetSuccess(4)

	progress = q.Progress()
	assert.True(t, progress.HasStarted)
	assert.True(t, progress.HasFinished)
	assert.NotZero(t, progress.StartTime, "start time should not be zero")
	assert.NotZero(t, progress.FinishTime, "finish time should not be zero")
	assert.Zero(t, progress.ETA, "eta should be zero")
	assert.Zero(t, progress.TimeLeft, "time left should be zero")
	assert.Equal(t, 4, progress.TotalItems)
	assert.Equal(t, 4, progress.ProcessedItems)
	assert.Equal(t, 2, progress.SuccessItems)
	assert.Equal(t, 2, progress.SkippedItems)
	assert.Equal(t, 0, progress.InProgressItems)
	assert.InDelta(t, 100.0, progress.ProgressPct, 0)
}

// TestEnqueueAfterFinish_Success tests reopening a finished queue.
func TestEnqueueAfterFinish_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()

	q.Enqueue(1)
	q.Dequeue()
	q.SetSuccess(1)

	progress := q.Progress()
	assert.True(t, progress.HasFinished)

	q.Enqueue(2)

	progress = q.Progress()
	assert.False(t, progress.HasFinished)
	assert.Zero(t, progress.FinishTime, "finish time should be reset")
}

// TestQueueConcurrency_Success tests thread-safety under concurrent use.
func TestQueueConcurrency_Success(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()

	const producers = 4
	const perProducer = 250

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := range perProducer {
				q.Enqueue(base*perProducer + i)
			}
		}(p)
	}
	wg.Wait()

	var consumed int
	var mu sync.Mutex

	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				item, ok := q.Dequeue()
				if !ok {
					return
				}
				q.SetProcessing(item)
				q.SetSuccess(item)

				mu.Lock()
				consumed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, producers*perProducer, consumed)

	progress := q.Progress()
	assert.Equal(t, producers*perProducer, progress.TotalItems)
	assert.Equal(t, producers*perProducer, progress.SuccessItems)
	assert.InDelta(t, 100.0, progress.ProgressPct, 0)
}

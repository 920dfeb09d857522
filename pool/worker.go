package pool

import (
	"context"
	"time"

	"github.com/utkarsh5026/parpool/internal/cpu"
	"github.com/utkarsh5026/parpool/internal/metrics"
	"github.com/utkarsh5026/parpool/internal/types"
)

// worker runs tasks until the pool shuts down and the queue is empty.
func (c *core) worker(id int) {
	if c.conf.lockThreads {
		release := cpu.LockWorker(id, c.conf.pinThreads)
		defer release()
	}

	debugLog("pool %s: worker %d started", c.name, id)
	defer debugLog("pool %s: worker %d exiting", c.name, id)

	for {
		task, ok := c.next()
		if !ok {
			return
		}

		task.Run(id)
		c.finish()
	}
}

// next blocks until a task is available and claims it. It reports false
// once the pool is shut down and nothing is left to run.
func (c *core) next() (*types.SubmittedTask, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.shutdown && c.queue.Len() == 0 {
		c.workCond.Wait()
	}
	if c.queue.Len() == 0 {
		return nil, false
	}

	task := c.queue.Next()
	c.queue.RemoveNext()
	c.busy++
	c.metrics.RecordQueue(c.busy, c.queue.Len())
	return task, true
}

func (c *core) finish() {
	c.mu.Lock()
	c.busy--
	c.metrics.RecordQueue(c.busy, c.queue.Len())
	c.mu.Unlock()

	c.finishCond.Broadcast()
}

// execute runs fn on the given worker with the pool's rate limit, hooks,
// retry policy and panic recovery applied.
func (c *core) execute(worker int, retry bool, fn func(worker int) error) error {
	if c.conf.rateLimiter != nil {
		if err := c.conf.rateLimiter.Wait(context.Background()); err != nil {
			return err
		}
	}

	if c.conf.beforeTaskStart != nil {
		c.conf.beforeTaskStart(worker)
	}

	start := time.Now()
	err := c.processWithRecovery(worker, retry, fn)
	elapsed := time.Since(start)

	c.metrics.RecordTask(outcomeOf(err), elapsed)
	if c.conf.onTaskEnd != nil {
		c.conf.onTaskEnd(worker, elapsed, err)
	}
	return err
}

// processWithRecovery executes fn with panic recovery and, when retry is
// set, the pool's retry policy. A panic ends the task without further
// attempts.
func (c *core) processWithRecovery(worker int, retry bool, fn func(worker int) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()

	attempts := 1
	if retry {
		attempts = max(c.conf.maxAttempts, 1)
	}

	for attempt := range attempts {
		if attempt > 0 && c.retry != nil {
			time.Sleep(c.retry.NextDelay(attempt - 1))
		}

		err = fn(worker)
		if err == nil {
			return nil
		}

		if c.conf.onRetry != nil && attempt < attempts-1 {
			c.conf.onRetry(worker, attempt+1, err)
		}
	}

	return err
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	if _, ok := err.(*PanicError); ok {
		return metrics.OutcomePanic
	}
	return metrics.OutcomeError
}

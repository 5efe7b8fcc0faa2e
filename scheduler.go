package grove

import (
	"fmt"
	"time"
)

// levelTask is one level's unit of work for one tick. Dependencies are
// explicit: the task begins only once after is closed, and closes done when
// every node in its level has been recomputed. Chaining done into the next
// task's after is what guarantees a level never observes a partially
// updated parent.
type levelTask struct {
	level  int
	params tickParams
	after  <-chan struct{}
	done   chan struct{}
}

// immediate is a pre-closed dependency for the first task of a tick (its
// parent, the root, is updated synchronously before any task is submitted).
var immediate = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Update advances the tree by one tick. The root is recomputed synchronously
// from the anchor transform; every other level runs as a chained parallel
// task reading the level above. Update returns only after the deepest level
// has finished, so the matrices are fully consistent when it does.
//
// dt is the elapsed time in seconds and must be >= 0. There is no
// cancellation: a tick either completes or the process is wedged.
func (t *Tree) Update(anchor Transform, dt float32) {
	t.checkReleased("Update")
	if dt < 0 {
		panic(fmt.Sprintf("grove: negative dt %v", dt))
	}

	var began time.Time
	if t.debug {
		began = time.Now()
	}

	// Per-tick globals, computed once and passed by value to every task.
	tp := tickParams{
		spinDelta:   t.cfg.SpinSpeed * dt,
		objectScale: anchor.Scale * t.cfg.BaseScale,
	}

	t.updateRoot(anchor, tp)

	prev := (<-chan struct{})(immediate)
	for k := 1; k < len(t.levels); k++ {
		task := &levelTask{
			level:  k,
			params: tp,
			after:  prev,
			done:   make(chan struct{}),
		}
		go t.runTask(task)
		prev = task.done
	}
	<-prev

	t.tick++
	if t.debug {
		t.debugLog(time.Since(began))
	}
}

// runTask waits for the task's dependency, splits the level across the
// worker pool, and signals completion.
func (t *Tree) runTask(task *levelTask) {
	<-task.after
	n := len(t.levels[task.level].nodes)
	t.pool.run(n, func(start, end int) {
		t.updateLevel(task.level, task.params, start, end)
	})
	close(task.done)
}

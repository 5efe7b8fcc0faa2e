package grove

import "sync"

// rangeJob is one contiguous chunk of a data-parallel pass.
type rangeJob struct {
	kernel     func(start, end int)
	start, end int
	wg         *sync.WaitGroup
}

// workerPool is a fixed set of goroutines that execute index-range kernels.
// One pool lives per simulation instance, started by the constructor and
// stopped by Release; workers never outlive the storage they write to.
type workerPool struct {
	jobs     chan rangeJob
	workers  int
	stopOnce sync.Once
}

func newWorkerPool(workers int) *workerPool {
	if workers < 1 {
		workers = 1
	}
	p := &workerPool{
		jobs:    make(chan rangeJob),
		workers: workers,
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *workerPool) worker() {
	for job := range p.jobs {
		job.kernel(job.start, job.end)
		job.wg.Done()
	}
}

// run splits [0, n) into one contiguous chunk per worker and blocks until
// every chunk has completed. This wait is the only barrier a data-parallel
// pass needs: chunks write disjoint index ranges.
func (p *workerPool) run(n int, kernel func(start, end int)) {
	if n <= 0 {
		return
	}
	chunks := p.workers
	if chunks > n {
		chunks = n
	}
	if chunks == 1 {
		kernel(0, n)
		return
	}

	size := (n + chunks - 1) / chunks
	count := (n + size - 1) / size

	var wg sync.WaitGroup
	wg.Add(count)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		p.jobs <- rangeJob{kernel: kernel, start: start, end: end, wg: &wg}
	}
	wg.Wait()
}

// stop shuts the workers down. Idempotent; run must not be called after.
func (p *workerPool) stop() {
	p.stopOnce.Do(func() {
		close(p.jobs)
	})
}

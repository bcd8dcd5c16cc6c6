// Package jobs runs batched data-parallel jobs on a persistent worker pool,
// ordered by completion handles.
package jobs

import (
	"runtime"
	"sync"
	"time"
)

// Job is one data-parallel pass over the index range [0, N).
type Job struct {
	Name string
	N    int
	// MinBatch is the smallest range handed to one worker. A job with fewer
	// than MinBatch items runs as a single batch.
	MinBatch int
	// Prepare runs once, after all dependencies retired and before any batch.
	Prepare func()
	// Run processes [start, end). worker identifies the executing worker and is
	// in [0, Workers()); no two batches run on the same worker at the same time.
	Run func(worker, start, end int)
}

// Handle tracks the completion of a scheduled job.
type Handle struct {
	name    string
	done    chan struct{}
	elapsed time.Duration
	batches int
}

// Complete blocks until the job and everything it depends on has retired.
// A nil handle is already complete.
func (h *Handle) Complete() {
	if h == nil {
		return
	}
	<-h.done
}

// Name returns the job name.
func (h *Handle) Name() string {
	return h.name
}

// Elapsed returns the time from Prepare to the last batch finishing.
// Only valid after Complete.
func (h *Handle) Elapsed() time.Duration {
	return h.elapsed
}

// Batches returns how many batches the job was split into. Only valid after Complete.
func (h *Handle) Batches() int {
	return h.batches
}

// Combine returns a handle that completes once all of hs have completed.
func Combine(hs ...*Handle) *Handle {
	h := &Handle{name: "combine", done: make(chan struct{})}
	go func() {
		for _, dep := range hs {
			dep.Complete()
		}
		close(h.done)
	}()
	return h
}

// batch is a range of one job for a worker to process.
type batch struct {
	job        *Job
	start, end int
	wg         *sync.WaitGroup
}

// Scheduler owns the worker goroutines.
type Scheduler struct {
	numWorkers int

	// Worker pool channels
	workChan chan batch     // sends batches to workers
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	mu       sync.Mutex
	running  bool
}

// NewScheduler creates a scheduler with the given number of workers.
// workers <= 0 uses GOMAXPROCS.
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scheduler{numWorkers: workers}
}

// Workers returns the number of worker goroutines.
func (s *Scheduler) Workers() int {
	return s.numWorkers
}

// Start launches persistent worker goroutines. Calling Start on a running
// scheduler does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	s.workChan = make(chan batch, s.numWorkers)
	s.stopChan = make(chan struct{})
	s.running = true

	for i := 0; i < s.numWorkers; i++ {
		s.wg.Add(1)
		go s.worker(i, s.workChan, s.stopChan)
	}
}

// Stop signals all workers to exit and waits for them.
// Jobs must be completed before calling Stop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	close(s.stopChan)
	s.wg.Wait()
	s.running = false
}

// worker runs in a goroutine, processing batches until stopped.
func (s *Scheduler) worker(workerID int, work <-chan batch, stop <-chan struct{}) {
	defer s.wg.Done()

	for {
		select {
		case <-stop:
			return
		case b := <-work:
			b.job.Run(workerID, b.start, b.end)
			b.wg.Done()
		}
	}
}

// Schedule queues job to run after all deps complete and returns its handle.
// It does not block. The scheduler is started if it is not running.
func (s *Scheduler) Schedule(job Job, deps ...*Handle) *Handle {
	s.Start()

	s.mu.Lock()
	work := s.workChan
	s.mu.Unlock()

	h := &Handle{name: job.Name, done: make(chan struct{})}
	go func() {
		for _, dep := range deps {
			dep.Complete()
		}

		start := time.Now()
		if job.Prepare != nil {
			job.Prepare()
		}

		size := batchSize(job.N, job.MinBatch, s.numWorkers)
		var wg sync.WaitGroup
		for lo := 0; lo < job.N; lo += size {
			hi := min(lo+size, job.N)
			wg.Add(1)
			h.batches++
			work <- batch{job: &job, start: lo, end: hi, wg: &wg}
		}
		wg.Wait()

		h.elapsed = time.Since(start)
		close(h.done)
	}()
	return h
}

// batchSize splits n items evenly across workers without going below minBatch.
func batchSize(n, minBatch, workers int) int {
	if minBatch < 1 {
		minBatch = 1
	}
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	if size < minBatch {
		size = minBatch
	}
	return size
}

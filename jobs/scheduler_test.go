package jobs

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestBatchSize(t *testing.T) {
	tests := []struct {
		n, minBatch, workers int
		want                 int
	}{
		{1000, 64, 4, 250},
		{100, 64, 4, 64},
		{10, 64, 8, 64}, // below the threshold: single batch
		{0, 64, 4, 64},
		{7, 0, 0, 7},
	}
	for _, tt := range tests {
		if got := batchSize(tt.n, tt.minBatch, tt.workers); got != tt.want {
			t.Errorf("batchSize(%d, %d, %d) = %d, want %d", tt.n, tt.minBatch, tt.workers, got, tt.want)
		}
	}
}

func TestScheduleCoversRangeOnce(t *testing.T) {
	s := NewScheduler(4)
	defer s.Stop()

	const n = 1003
	hits := make([]int32, n)
	h := s.Schedule(Job{
		Name:     "cover",
		N:        n,
		MinBatch: 16,
		Run: func(worker, start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		},
	})
	h.Complete()

	for i, c := range hits {
		if c != 1 {
			t.Fatalf("index %d processed %d times", i, c)
		}
	}
	if h.Batches() != 4 {
		t.Errorf("expected 4 batches, got %d", h.Batches())
	}
	if h.Name() != "cover" {
		t.Errorf("unexpected name %q", h.Name())
	}
}

func TestSmallJobRunsAsSingleBatch(t *testing.T) {
	s := NewScheduler(8)
	defer s.Stop()

	var calls int32
	h := s.Schedule(Job{N: 10, MinBatch: 64, Run: func(worker, start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("unexpected range [%d, %d)", start, end)
		}
	}})
	h.Complete()
	if calls != 1 {
		t.Errorf("expected one batch, got %d", calls)
	}
}

func TestEmptyJobCompletes(t *testing.T) {
	s := NewScheduler(2)
	defer s.Stop()

	prepared := false
	h := s.Schedule(Job{N: 0, Prepare: func() { prepared = true }, Run: func(int, int, int) {
		t.Error("Run called for empty job")
	}})
	h.Complete()
	if !prepared {
		t.Error("Prepare should run even for an empty job")
	}
}

func TestDependentJobSeesWrites(t *testing.T) {
	s := NewScheduler(4)
	defer s.Stop()

	const n = 512
	data := make([]int, n)
	snapshot := make([]int, n)

	first := s.Schedule(Job{Name: "write", N: n, MinBatch: 8, Run: func(_, start, end int) {
		for i := start; i < end; i++ {
			data[i] = i + 1
		}
	}})
	second := s.Schedule(Job{
		Name:     "read",
		N:        n,
		MinBatch: 8,
		Prepare:  func() { copy(snapshot, data) },
		Run: func(_, start, end int) {
			for i := start; i < end; i++ {
				data[i] = snapshot[n-1-i]
			}
		},
	}, first)
	second.Complete()

	for i := range data {
		if data[i] != n-i {
			t.Fatalf("data[%d] = %d, want %d", i, data[i], n-i)
		}
	}
}

func TestCompleteWaitsTransitively(t *testing.T) {
	s := NewScheduler(2)
	defer s.Stop()

	var order []string
	var mu sync.Mutex
	record := func(name string) func(int, int, int) {
		return func(int, int, int) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	a := s.Schedule(Job{Name: "a", N: 1, Run: record("a")})
	b := s.Schedule(Job{Name: "b", N: 1, Run: record("b")}, a)
	c := s.Schedule(Job{Name: "c", N: 1, Run: record("c")}, b)
	c.Complete()

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("unexpected order %v", order)
	}
}

func TestCombine(t *testing.T) {
	s := NewScheduler(4)
	defer s.Stop()

	var count int32
	inc := func(int, int, int) { atomic.AddInt32(&count, 1) }
	h := Combine(
		s.Schedule(Job{N: 1, Run: inc}),
		s.Schedule(Job{N: 1, Run: inc}),
		s.Schedule(Job{N: 1, Run: inc}),
		nil,
	)
	h.Complete()
	if count != 3 {
		t.Errorf("expected 3 completed jobs, got %d", count)
	}
}

func TestWorkerRunsOneBatchAtATime(t *testing.T) {
	s := NewScheduler(4)
	defer s.Stop()

	busy := make([]int32, s.Workers())
	var overlap, badID int32
	run := func(worker, start, end int) {
		if worker < 0 || worker >= len(busy) {
			atomic.AddInt32(&badID, 1)
			return
		}
		if !atomic.CompareAndSwapInt32(&busy[worker], 0, 1) {
			atomic.AddInt32(&overlap, 1)
			return
		}
		sum := 0
		for i := start; i < end*50; i++ {
			sum += i
		}
		_ = sum
		atomic.StoreInt32(&busy[worker], 0)
	}

	// Independent jobs compete for the same workers.
	var hs []*Handle
	for i := 0; i < 8; i++ {
		hs = append(hs, s.Schedule(Job{N: 400, MinBatch: 10, Run: run}))
	}
	Combine(hs...).Complete()

	if badID != 0 {
		t.Errorf("%d batches saw an out-of-range worker id", badID)
	}
	if overlap != 0 {
		t.Errorf("%d batches overlapped on one worker", overlap)
	}
}

func TestStopAndRestart(t *testing.T) {
	s := NewScheduler(2)
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()

	ran := false
	s.Schedule(Job{N: 1, Run: func(int, int, int) { ran = true }}).Complete()
	s.Stop()
	if !ran {
		t.Error("job did not run after restart")
	}
}

func TestDefaultWorkers(t *testing.T) {
	if NewScheduler(0).Workers() < 1 {
		t.Error("expected at least one worker")
	}
}

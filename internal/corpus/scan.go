package corpus

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ScanStats counts what happened to each file of a scan.
type ScanStats struct {
	Files       int
	Used        int
	NoDate      int
	TooOld      int
	Unreadable  int
	Malformed   int
	NoFormat    int
	OtherFormat int
}

// Record classifies the outcome of one Selector.Open call.
func (s *ScanStats) Record(err error) {
	s.Files++
	switch {
	case err == nil:
		s.Used++
	case errors.Is(err, ErrNoDate):
		s.NoDate++
	case errors.Is(err, ErrTooOld):
		s.TooOld++
	case errors.Is(err, ErrMalformed):
		s.Malformed++
	case errors.Is(err, ErrNoFormat):
		s.NoFormat++
	case errors.Is(err, ErrFormatMismatch):
		s.OtherFormat++
	default:
		s.Unreadable++
	}
}

// Skipped returns the number of files that contributed nothing.
func (s ScanStats) Skipped() int {
	return s.Files - s.Used
}

// String renders the counters for log output.
func (s ScanStats) String() string {
	return fmt.Sprintf("files=%d used=%d no_date=%d too_old=%d unreadable=%d malformed=%d no_format=%d other_format=%d",
		s.Files, s.Used, s.NoDate, s.TooOld, s.Unreadable, s.Malformed, s.NoFormat, s.OtherFormat)
}

// Workers returns n, or the CPU count when n is not positive, capped by the
// number of jobs.
func Workers(n, jobs int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Scan runs fn over every path on a bounded pool of workers. Each call of fn
// works on its own file only; results are handed to collect one at a time
// from the calling goroutine, which is the only place they are combined.
// Scan returns after every path has been processed.
func Scan[T any](paths []string, workers int, fn func(path string) T, collect func(T)) {
	if len(paths) == 0 {
		return
	}
	workers = Workers(workers, len(paths))

	jobs := make(chan string, workers)
	results := make(chan T, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- fn(path)
			}
		}()
	}

	go func() {
		for _, path := range paths {
			jobs <- path
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		collect(r)
	}
}

package corpus

import (
	"fmt"
	"os"
)

// Entry is a record that passed every selection gate, with its derived age.
type Entry struct {
	Path   string
	Date   Date
	Age    int
	Weight float64
	Record *Record
}

// Selector decides whether a corpus file contributes to a run.
type Selector struct {
	// Formats are case-insensitive substring patterns for the tournament format.
	Formats []string

	// Today is the current day counter (see TodayDays).
	Today int

	// Decay supplies the age cutoff and weighting.
	Decay Decay

	// ReadFile reads a corpus file. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// Open runs the selection pipeline for one file: extract the date, age it,
// drop it if too old, then read, decode and format-filter it. Gates are
// checked in that order so old files are never read.
func (s Selector) Open(path string) (*Entry, error) {
	date, ok := DateFromPath(path)
	if !ok {
		return nil, ErrNoDate
	}

	age := s.Today - date.Days()
	if s.Decay.TooOld(age) {
		return nil, ErrTooOld
	}
	weight := s.Decay.Weight(age)

	readFile := s.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	rec, err := ParseRecord(data, s.Formats)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Path:   path,
		Date:   date,
		Age:    age,
		Weight: weight,
		Record: rec,
	}, nil
}

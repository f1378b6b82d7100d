package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Skip reasons. None of these abort a scan; they only empty a file's contribution.
var (
	ErrNoDate         = errors.New("no /YYYY/MM/DD/ segment in path")
	ErrTooOld         = errors.New("record older than max age")
	ErrMalformed      = errors.New("malformed record")
	ErrNoFormat       = errors.New("record has no tournament format")
	ErrFormatMismatch = errors.New("format not requested")
)

// Record is one tournament's decoded deck data.
type Record struct {
	Tournament Tournament `json:"tournament"`
	Decks      []Deck     `json:"decks,omitempty"`
}

// Tournament holds record metadata. Date is informational only; aging always
// uses the date embedded in the storage path.
type Tournament struct {
	Format *string `json:"format"`
	Name   string  `json:"name,omitempty"`
	Date   string  `json:"date,omitempty"`
}

// FormatName returns the declared format, or "" when absent.
func (t Tournament) FormatName() string {
	if t.Format == nil {
		return ""
	}
	return *t.Format
}

// Deck is one player's list.
type Deck struct {
	Player    string      `json:"player,omitempty"`
	Result    Result      `json:"result"`
	URL       string      `json:"url,omitempty"`
	Mainboard []CardEntry `json:"mainboard,omitempty"`
	Sideboard []CardEntry `json:"sideboard,omitempty"`
}

// UnmarshalJSON accepts "anchor_uri" as an alias of "url".
func (d *Deck) UnmarshalJSON(data []byte) error {
	type plain Deck
	var aux struct {
		plain
		AnchorURI string `json:"anchor_uri"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = Deck(aux.plain)
	if d.URL == "" {
		d.URL = aux.AnchorURI
	}
	return nil
}

// CardEntry is a card name and copy count as declared in a board.
type CardEntry struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
}

// Result is a deck's finishing result. Source data encodes it either as a
// string ("5-0", "1st") or a bare number (3); both normalize to a string.
type Result struct {
	Text    string
	Numeric bool
}

// String returns the normalized result.
func (r Result) String() string {
	return r.Text
}

// UnmarshalJSON decodes a string, number or null result.
func (r *Result) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = Result{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Result{Text: s}
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("result must be a string or number: %w", err)
		}
		*r = Result{Text: n.String(), Numeric: true}
		return nil
	}
}

// MarshalJSON writes the normalized string form.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Text)
}

// DecodeRecord decodes raw bytes into a Record. Negative copy counts are
// rejected as malformed.
func DecodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	for i := range rec.Decks {
		for _, board := range [][]CardEntry{rec.Decks[i].Mainboard, rec.Decks[i].Sideboard} {
			for _, c := range board {
				if c.Count < 0 {
					return nil, fmt.Errorf("%w: negative count %d for %q", ErrMalformed, c.Count, c.Name)
				}
			}
		}
	}

	return &rec, nil
}

// ParseRecord decodes data and checks the declared format against patterns.
func ParseRecord(data []byte, patterns []string) (*Record, error) {
	rec, err := DecodeRecord(data)
	if err != nil {
		return nil, err
	}
	if rec.Tournament.Format == nil {
		return nil, ErrNoFormat
	}
	if !MatchesFormat(*rec.Tournament.Format, patterns) {
		return nil, ErrFormatMismatch
	}
	return rec, nil
}

// MatchesFormat reports whether format contains any of patterns, ignoring case.
// This is a substring match: "mod" matches "Modern", "Modern" matches "Modern League".
func MatchesFormat(format string, patterns []string) bool {
	format = strings.ToLower(format)
	for _, p := range patterns {
		if strings.Contains(format, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// ParseFormats splits a comma separated format list, trimming each entry and
// dropping empty ones.
func ParseFormats(list string) []string {
	var formats []string
	for _, f := range strings.Split(list, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// Package search finds recorded decks that contain a combination of cards.
package search

import (
	"strconv"
	"strings"
	"unicode"
)

// Criterion is one card a deck must contain. A nil Count means any number of
// copies above zero.
type Criterion struct {
	Name  string
	Count *int
}

// String renders the criterion the way it is written on the command line.
func (c Criterion) String() string {
	if c.Count == nil {
		return c.Name
	}
	return strconv.Itoa(*c.Count) + " " + c.Name
}

// ParseCriterion reads "4 Lightning Bolt" or "Lightning Bolt".
//
// A leading run of digits followed by anything else is taken as the count and
// one run of whitespace after it is skipped. Card names that start with digits
// are therefore read as a count plus the remainder of the name.
func ParseCriterion(input string) Criterion {
	input = strings.TrimSpace(input)

	end := strings.IndexFunc(input, func(r rune) bool { return r < '0' || r > '9' })
	if end <= 0 {
		return Criterion{Name: input}
	}

	count, err := strconv.Atoi(input[:end])
	if err != nil {
		return Criterion{Name: input}
	}

	name := strings.TrimLeftFunc(input[end:], unicode.IsSpace)
	return Criterion{Name: name, Count: &count}
}

// ParseCriteria parses every input, dropping those with an empty name.
func ParseCriteria(inputs []string) []Criterion {
	criteria := make([]Criterion, 0, len(inputs))
	for _, in := range inputs {
		c := ParseCriterion(in)
		if c.Name == "" {
			continue
		}
		criteria = append(criteria, c)
	}
	return criteria
}

package coder

import (
	"fmt"
	"slices"
)

// Recognized directive names.
const (
	ParamCountPicture = "Count_Picture"
)

var (
	trueValues  = []string{"True", "true", "1"}
	falseValues = []string{"False", "false", "0"}
)

// Params are document settings defined by directives before the first zone.
type Params struct {
	// CountWord requests word summary. It is the default mode and can only be
	// switched off by requesting picture summary.
	CountWord bool
	// CountPicture requests picture summary.
	CountPicture bool
}

// DefaultParams returns settings used when document has no directives.
func DefaultParams() Params {
	return Params{CountWord: true}
}

func (p *Params) set(key, value string) error {
	if key != ParamCountPicture {
		return fmt.Errorf("%w %q", ErrUnknownParam, key)
	}

	var v bool
	switch {
	case slices.Contains(trueValues, value):
		v = true
	case slices.Contains(falseValues, value):
	default:
		return fmt.Errorf("%w: %s may only be one of %v or %v, got %q", ErrInvalidParamValue, key, trueValues, falseValues, value)
	}

	p.CountPicture = v
	if v {
		p.CountWord = false
	}
	return nil
}

// ReadingTime returns estimated reading time in minutes for active mode and
// the counter it is based on.
func (p Params) ReadingTime(c Counters) (minutes, count int, ok bool) {
	switch {
	case p.CountWord:
		return WordsReadingTime(c.Words), c.Words, true
	case p.CountPicture:
		return PicturesReadingTime(c.Pictures), c.Pictures, true
	}
	return 0, 0, false
}

// Counters are accumulated over body zone only.
type Counters struct {
	// Words is number of characters in body text paragraphs.
	Words int
	// Pictures is number of accepted body image paragraphs.
	Pictures int
}

// WordsReadingTime rounds to the nearest minute at 600 characters per minute.
func WordsReadingTime(words int) int {
	return (words + 300) / 600
}

// PicturesReadingTime is 3 minutes below 20 pictures, 4 below 30, 5 at 30
// and one more minute per 20 pictures after that.
func PicturesReadingTime(pictures int) int {
	switch {
	case pictures < 20:
		return 3
	case pictures < 30:
		return 4
	case pictures == 30:
		return 5
	default:
		return 5 + (pictures-31)/20
	}
}

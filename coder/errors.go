package coder

import (
	"errors"
	"fmt"
)

// Conversion failures. All of them are fatal, no partial documents are
// produced. Use errors.Is to match.
var (
	ErrUnknownZone          = errors.New("unknown zone")
	ErrUnexpectedZoneEnd    = errors.New("unexpected zone end")
	ErrZoneMismatch         = errors.New("zone end does not match current zone")
	ErrUnclosedZone         = errors.New("unclosed zone")
	ErrUnknownParam         = errors.New("unknown parameter")
	ErrInvalidParamValue    = errors.New("invalid parameter value")
	ErrParamDefinedTooLate  = errors.New("parameter must be defined before any zone")
	ErrConflictingCounters  = errors.New("word and picture counters are both requested")
	ErrMultiPictureConflict = errors.New("different pictures in a single paragraph")
	ErrUnknownStyle         = errors.New("reference to undefined style")
	ErrUnknownImage         = errors.New("reference to unavailable image")
)

// ParagraphError attaches source position to a conversion failure so the
// author can find offending paragraph. Ordinal is -1 when failure is not
// tied to a single paragraph.
type ParagraphError struct {
	Ordinal int
	Text    string
	Err     error
}

func (e *ParagraphError) Error() string {
	if e.Ordinal < 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("paragraph %d %q: %v", e.Ordinal+1, e.Text, e.Err)
}

func (e *ParagraphError) Unwrap() error {
	return e.Err
}

func paragraphError(ordinal int, text string, err error) error {
	return &ParagraphError{Ordinal: ordinal, Text: text, Err: err}
}

func documentError(err error) error {
	return &ParagraphError{Ordinal: -1, Err: err}
}

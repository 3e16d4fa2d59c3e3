package graph

import (
	"errors"
	"fmt"
)

// ExtractionParseError reports a model reply that contained no decodable
// JSON object. Raw retains the full reply for offline inspection.
type ExtractionParseError struct {
	Raw string
	Err error
}

func (e *ExtractionParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no parsable JSON object in model reply: %v", e.Err)
	}
	return "no parsable JSON object in model reply"
}

func (e *ExtractionParseError) Unwrap() error {
	return e.Err
}

// ExtractionShapeError reports a decoded reply whose "nodes" or
// "relationships" keys are not arrays.
type ExtractionShapeError struct {
	Raw string
}

func (e *ExtractionShapeError) Error() string {
	return `the "nodes" and "relationships" keys in the model reply must be arrays`
}

// NoGraphExtractedError is returned when every chunk of a document failed
// extraction. It carries all underlying chunk errors.
type NoGraphExtractedError struct {
	Errs []error
}

func (e *NoGraphExtractedError) Error() string {
	return fmt.Sprintf("failed to extract a knowledge graph from any part of the document (%d chunks failed): %v",
		len(e.Errs), errors.Join(e.Errs...))
}

func (e *NoGraphExtractedError) Unwrap() []error {
	return e.Errs
}

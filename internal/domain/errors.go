package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRecords is returned when a filter leaves nothing to summarize. It is
// a rendering path, not a failure.
var ErrNoRecords = errors.New("no records match the filter")

// SchemaResolutionError reports that no attribute of the polygon dataset
// could serve as the province join key.
type SchemaResolutionError struct {
	Attributes []string
}

func (e *SchemaResolutionError) Error() string {
	return fmt.Sprintf("no province attribute found in polygon dataset (attributes: %s)",
		strings.Join(e.Attributes, ", "))
}

// ClassificationInputError reports a feature value the classifier cannot
// accept.
type ClassificationInputError struct {
	Field  string
	Reason string
}

func (e *ClassificationInputError) Error() string {
	if e.Field == "" {
		return "invalid classifier input: " + e.Reason
	}
	return fmt.Sprintf("invalid classifier input %q: %s", e.Field, e.Reason)
}

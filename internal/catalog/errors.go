// Package catalog loads client profiles and the product catalog and answers lookups and searches over them.
package catalog

import "fmt"

// LoadError represents an error reading, validating or decoding a catalog file
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

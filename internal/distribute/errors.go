package distribute

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRepoName indicates records without a repo_name, which cannot
	// be grouped.
	ErrMissingRepoName = errors.New("records without repo_name")

	// ErrZeroCapacity indicates a roster whose weekly capacity sums to zero.
	ErrZeroCapacity = errors.New("total weekly capacity is zero")
)

// MissingRepoError lists the input lines of records lacking repo_name.
type MissingRepoError struct {
	Lines []int
}

func (e *MissingRepoError) Error() string {
	const maxShown = 10
	shown := e.Lines
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	parts := make([]string, len(shown))
	for i, l := range shown {
		parts[i] = fmt.Sprint(l)
	}
	msg := fmt.Sprintf("%d %s (lines %s", len(e.Lines), ErrMissingRepoName, strings.Join(parts, ", "))
	if len(e.Lines) > maxShown {
		msg += ", ..."
	}
	return msg + ")"
}

func (e *MissingRepoError) Unwrap() error { return ErrMissingRepoName }

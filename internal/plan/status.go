package plan

import "fmt"

// Status is the lifecycle state of a plan element.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// ParseStatus maps a raw attribute value onto the Status enum.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that the status is one of the known values.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete:
		return nil
	default:
		return fmt.Errorf("invalid status %q: must be pending, in_progress, or complete", string(s))
	}
}

// String returns the status as a string.
func (s Status) String() string {
	return string(s)
}

package client

import "fmt"

// NetworkError is returned for any transport or server failure. Message is
// meant to be shown to the user as is.
type NetworkError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Detail returns a diagnostic description including the operation and status.
func (e *NetworkError) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: status=%d: %s: %v", e.Op, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: status=%d: %s", e.Op, e.Status, e.Message)
}

const (
	msgFetchFailed = "There was an error retrieving the projects. Please try again."
	msgSaveFailed  = "There was an error updating the project. Please try again."
)

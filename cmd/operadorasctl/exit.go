package main

// Exit codes beyond the generic 1.
const (
	exitOperationFailed = 2
)

type exitError struct {
	code    int
	message string
}

func (e exitError) Error() string {
	return e.message
}

package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindServer means the server replied with a non-2xx status.
	KindServer ErrorKind = "SERVER"
	// KindConnectivity means the request was sent but no reply arrived.
	KindConnectivity ErrorKind = "CONNECTIVITY"
	// KindRequest means the request could not be built or sent.
	KindRequest ErrorKind = "REQUEST"
)

var ErrEmptyIdentifier = errors.New("operator identifier is required")

type APIError struct {
	Kind   ErrorKind
	Op     string
	Status int
	Detail string
	Cause  error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Detail
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	head := string(e.Kind)
	if e.Status != 0 {
		head = fmt.Sprintf("%s %d", e.Kind, e.Status)
	}
	if e.Op != "" {
		head = e.Op + ": " + head
	}
	if msg == "" {
		return head
	}
	return head + ": " + msg
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Message returns the user-facing text for a list failure.
func (e *APIError) Message() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindServer:
		if e.Detail != "" {
			return e.Detail
		}
		return MessageServerError
	case KindConnectivity:
		return MessageNoResponse
	default:
		return MessageRequestConfig
	}
}

func ServerError(op string, status int, detail string) *APIError {
	return &APIError{Kind: KindServer, Op: op, Status: status, Detail: detail}
}

func ConnectivityError(op string, cause error) *APIError {
	return &APIError{Kind: KindConnectivity, Op: op, Cause: cause}
}

func RequestError(op string, cause error) *APIError {
	return &APIError{Kind: KindRequest, Op: op, Cause: cause}
}

// AsAPIError classifies any error. Errors that are not *APIError count as
// request construction failures.
func AsAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr
	}
	return RequestError("", err)
}

func KindFrom(err error) (ErrorKind, bool) {
	if err == nil {
		return "", false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind != "" {
		return apiErr.Kind, true
	}
	return "", false
}

// StatusFrom returns the HTTP status of a non-2xx server reply, or 0. A 2xx
// reply with an unusable body keeps its status on the error but reports 0.
func StatusFrom(err error) int {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindServer {
		return 0
	}
	if apiErr.Status >= 200 && apiErr.Status < 300 {
		return 0
	}
	return apiErr.Status
}

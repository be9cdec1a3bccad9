package domain

import "time"

// Operation names a store operation family.
type Operation string

const (
	OperationList   Operation = "list"
	OperationDetail Operation = "detail"
)

// Outcome labels how an operation ended.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeServerError       Outcome = "server_error"
	OutcomeConnectivityError Outcome = "connectivity_error"
	OutcomeRequestError      Outcome = "request_error"
)

// OutcomeFor maps an operation error to its outcome label.
func OutcomeFor(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	switch AsAPIError(err).Kind {
	case KindServer:
		return OutcomeServerError
	case KindConnectivity:
		return OutcomeConnectivityError
	default:
		return OutcomeRequestError
	}
}

// Metrics records store and transport measurements.
type Metrics interface {
	ObserveOperation(op Operation, duration time.Duration, outcome Outcome)
	AddInFlight(op Operation, delta int)
	ObserveHTTPRequest(endpoint string, status int, duration time.Duration)
}

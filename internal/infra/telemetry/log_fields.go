package telemetry

import (
	"time"

	"go.uber.org/zap"

	"operadoras/internal/domain"
)

const (
	FieldEvent      = "event"
	FieldOperation  = "operation"
	FieldOutcome    = "outcome"
	FieldEndpoint   = "endpoint"
	FieldStatus     = "status"
	FieldDurationMs = "duration_ms"
	FieldRequestID  = "request_id"
	FieldOperatorID = "operator_id"
)

const (
	EventListSuccess   = "list_success"
	EventListFailure   = "list_failure"
	EventDetailSuccess = "detail_success"
	EventDetailFailure = "detail_failure"
	EventUnknownShape  = "unknown_shape"
	EventRequestSent   = "request_sent"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func OperationField(op domain.Operation) zap.Field {
	return zap.String(FieldOperation, string(op))
}

func OutcomeField(outcome domain.Outcome) zap.Field {
	return zap.String(FieldOutcome, string(outcome))
}

func EndpointField(endpoint string) zap.Field {
	return zap.String(FieldEndpoint, endpoint)
}

func StatusField(status int) zap.Field {
	return zap.Int(FieldStatus, status)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}

func OperatorIDField(value string) zap.Field {
	return zap.String(FieldOperatorID, value)
}

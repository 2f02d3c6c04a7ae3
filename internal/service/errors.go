package service

import "errors"

// Workflow error taxonomy. Handlers map these onto the response envelope;
// nothing here is retried inside the workflow itself.
var (
	ErrInvalidRequest            = errors.New("invalid request")
	ErrOrderNotFound             = errors.New("order not found")
	ErrGatewayUnavailable        = errors.New("payment gateway unavailable")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrPaymentFailed             = errors.New("payment failed")
	ErrPersistenceFailure        = errors.New("order store failure")
)

package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type NotAuthorizedError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// InsufficientFundsError is returned when an expense would drive a wallet
// balance negative. CurrentBalance is surfaced to the client for display.
type InsufficientFundsError struct {
	ErrorMessage
	CurrentBalance float64
}

type DatabaseError struct {
	ErrorMessage
	Operation string
}

type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
}

type EncryptionError struct {
	ErrorMessage
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewNotAuthorizedError(message string) *NotAuthorizedError {
	return &NotAuthorizedError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewInsufficientFundsError(message string, currentBalance float64) *InsufficientFundsError {
	return &InsufficientFundsError{
		ErrorMessage:   ErrorMessage{Message: message},
		CurrentBalance: currentBalance,
	}
}

func NewDatabaseError(operation, message string) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
	}
}

func NewExternalServiceError(service, message string, transient bool) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
	}
}

func NewEncryptionError(message string) *EncryptionError {
	return &EncryptionError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// ConflictError reports an optimistic-concurrency failure: the selection
// changed between the read and the guarded write, and retries ran out.
type ConflictError struct {
	ErrorMessage
}

// DatabaseError wraps a storage-layer fault. Operation names the store
// call for logging; the message never reaches the client.
type DatabaseError struct {
	ErrorMessage
	Operation string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDatabaseError(operation string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: err.Error()},
		Operation:    operation,
	}
}

package services

// Error taxonomy for the domain action layer. Every action maps lower-level
// failures into one of these kinds with a localized, non-leaking message;
// controllers translate the kind into an HTTP status.

type ErrorKind int

const (
	KindUnauthenticated ErrorKind = iota + 1
	KindForbidden
	KindValidation
	KindNotFound
	KindInvalidState
	KindPersistence
)

type ActionError struct {
	Kind    ErrorKind
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

func errUnauthenticated() error {
	return &ActionError{Kind: KindUnauthenticated, Message: "認証されていません"}
}

func errForbidden() error {
	return &ActionError{Kind: KindForbidden, Message: "権限がありません"}
}

func errValidation(message string) error {
	return &ActionError{Kind: KindValidation, Message: message}
}

func errNotFound(message string) error {
	return &ActionError{Kind: KindNotFound, Message: message}
}

func errInvalidState(message string) error {
	return &ActionError{Kind: KindInvalidState, Message: message}
}

func errPersistence(message string) error {
	return &ActionError{Kind: KindPersistence, Message: message}
}

package strata

import "fmt"

// ErrorCode represents specific error conditions in the state machine
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Message type already has a handler on this state
	ErrCodeDuplicateSubscription
	// Catch-all and specific subscriptions were mixed on one state
	ErrCodeMixedSubscriptionKind
	// State instance was already registered
	ErrCodeDuplicateStateInstance
	// Another state of the same type was already registered
	ErrCodeDuplicateStateType
	// Initial state references an unregistered type
	ErrCodeUnknownInitialState
	// Transition target references an unregistered type
	ErrCodeUnknownTransitionTarget
	// Tick was called from a goroutine that does not own the machine
	ErrCodeWrongThreadAccess
)

// SubscriptionError represents subscription-table errors
type SubscriptionError struct {
	Code        ErrorCode
	MessageType string
	Reason      string
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("subscription error [%s]: %s", e.MessageType, e.Reason)
}

// NewDuplicateSubscriptionError creates a new duplicate subscription error
func NewDuplicateSubscriptionError(messageType string) *SubscriptionError {
	return &SubscriptionError{
		Code:        ErrCodeDuplicateSubscription,
		MessageType: messageType,
		Reason:      fmt.Sprintf("message type '%s' already has a handler", messageType),
	}
}

// NewMixedSubscriptionKindError creates a new mixed subscription kind error
func NewMixedSubscriptionKindError(messageType string, reason string) *SubscriptionError {
	return &SubscriptionError{
		Code:        ErrCodeMixedSubscriptionKind,
		MessageType: messageType,
		Reason:      reason,
	}
}

// RegistrationError represents state registration and initial-state errors
type RegistrationError struct {
	Code   ErrorCode
	State  string
	Reason string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration error [%s]: %s", e.State, e.Reason)
}

// NewDuplicateStateInstanceError creates a new duplicate state instance error
func NewDuplicateStateInstanceError(state string) *RegistrationError {
	return &RegistrationError{
		Code:   ErrCodeDuplicateStateInstance,
		State:  state,
		Reason: "state instance already registered",
	}
}

// NewDuplicateStateTypeError creates a new duplicate state type error
func NewDuplicateStateTypeError(state string) *RegistrationError {
	return &RegistrationError{
		Code:   ErrCodeDuplicateStateType,
		State:  state,
		Reason: fmt.Sprintf("a state of type '%s' is already registered", state),
	}
}

// NewUnknownInitialStateError creates a new unknown initial state error
func NewUnknownInitialStateError(state string) *RegistrationError {
	return &RegistrationError{
		Code:   ErrCodeUnknownInitialState,
		State:  state,
		Reason: fmt.Sprintf("initial state '%s' was never registered", state),
	}
}

// TransitionError represents transition-request errors
type TransitionError struct {
	Code   ErrorCode
	Target string
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition error [%s]: %s", e.Target, e.Reason)
}

// NewUnknownTransitionTargetError creates a new unknown transition target error
func NewUnknownTransitionTargetError(target string) *TransitionError {
	return &TransitionError{
		Code:   ErrCodeUnknownTransitionTarget,
		Target: target,
		Reason: fmt.Sprintf("no state registered for target type '%s'", target),
	}
}

// MachineError represents machine operation errors
type MachineError struct {
	Code      ErrorCode
	Operation string
	Message   string
}

func (e *MachineError) Error() string {
	return fmt.Sprintf("machine error during %s: %s", e.Operation, e.Message)
}

// NewWrongThreadAccessError creates a new wrong thread access error
func NewWrongThreadAccessError(operation string, owner, caller uint64) *MachineError {
	return &MachineError{
		Code:      ErrCodeWrongThreadAccess,
		Operation: operation,
		Message:   fmt.Sprintf("called from goroutine %d, machine is owned by goroutine %d", caller, owner),
	}
}

// IsSubscriptionError checks if an error is a SubscriptionError
func IsSubscriptionError(err error) bool {
	_, ok := err.(*SubscriptionError)
	return ok
}

// IsRegistrationError checks if an error is a RegistrationError
func IsRegistrationError(err error) bool {
	_, ok := err.(*RegistrationError)
	return ok
}

// IsTransitionError checks if an error is a TransitionError
func IsTransitionError(err error) bool {
	_, ok := err.(*TransitionError)
	return ok
}

// IsMachineError checks if an error is a MachineError
func IsMachineError(err error) bool {
	_, ok := err.(*MachineError)
	return ok
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	switch e := err.(type) {
	case *SubscriptionError:
		return e.Code
	case *RegistrationError:
		return e.Code
	case *TransitionError:
		return e.Code
	case *MachineError:
		return e.Code
	default:
		return ErrCodeNone
	}
}

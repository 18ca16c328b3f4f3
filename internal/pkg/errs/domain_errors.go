package errs

// Error taxonomy shared by the booking engine and the credit ledger.
// Domain and usecase errors are marked with one of these so the transport
// layer can classify them with Is.
var (
	ErrSlotConflict        = New("slot conflict")
	ErrNotFound            = New("not found")
	ErrAccessDenied        = New("access denied")
	ErrInvalidState        = New("invalid state")
	ErrAlreadyConfirmed    = New("already confirmed")
	ErrAlreadyCancelled    = New("already cancelled")
	ErrInsufficientCredits = New("insufficient credits")
	ErrStoreUnavailable    = New("store unavailable")
	ErrValidation          = New("validation error")
	ErrUnauthenticated     = New("unauthenticated")
)

// Validation marks err as a validation failure.
func Validation(msg string) error {
	return Mark(New(msg), ErrValidation)
}

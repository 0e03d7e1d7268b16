package checkoutsvc

// Kind classifies a checkout failure so transport can pick a status code and
// the caller sees a sanitized message, never a raw provider payload.
type Kind int

const (
	// KindValidation covers missing or malformed checkout input. No external
	// call has been made when one of these is returned.
	KindValidation Kind = iota

	// KindPaymentDeclined is a card decline reported by the provider.
	KindPaymentDeclined

	// KindPayment covers every other payment-provider failure.
	KindPayment

	// KindConfig means the server is missing credentials or location
	// configuration. User input had nothing to do with it.
	KindConfig

	// KindInternal is an unexpected server-side failure.
	KindInternal
)

// Error is a classified checkout failure. Message is safe to show the
// customer; the wrapped error carries the full detail for logs.
type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, err: err}
}

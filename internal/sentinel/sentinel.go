package sentinel

var _ error = Error("")

// Error is an error whose identity is its message. Declare values as
// constants:
//
//	const ErrNotFound = sentinel.Error("not found")
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}

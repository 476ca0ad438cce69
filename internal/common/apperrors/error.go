// Package apperrors provides the application error type used across the Brix
// client. It implements the standard error interface while adding error
// chaining, HTTP status codes, and message customization, so that transport
// and session failures can be classified with errors.Is and still carry the
// server's status.
package apperrors

// Error defines the interface for application errors. It extends the standard
// error interface with wrapping, message manipulation, and status code
// management. All methods return Error to support method chaining.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error   // creates a new error using current as template
	Msg(msg string) Error   // creates a new error with message and wraps original
	Err(err ...error) Error // attaches additional errors to current error
	SetStatusCode(int) Error
	StatusCode() int
	ErrorAll() string   // returns full message including wrapped errors
	UnwrapAll() []error // returns all wrapped errors
}

package envelope

// Error is the error carried by a failed [Result].
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Result is either Ok(value) or Err(message).
type Result[T any] struct {
	value T
	err   *Error
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err wraps a failure message. An empty message becomes [DefaultMessage].
func Err[T any](message string) Result[T] {
	if message == "" {
		message = DefaultMessage
	}
	return Result[T]{err: &Error{Message: message}}
}

// FromError converts err into a failed Result, or a zero-valued Ok when err is nil.
func FromError[T any](err error) Result[T] {
	if err == nil {
		var zero T
		return Ok(zero)
	}
	return Err[T](err.Error())
}

// OK reports whether the result is a success.
func (r Result[T]) OK() bool {
	return r.err == nil
}

// Unwrap returns the value, or the failure as an [*Error].
func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Message returns the failure message, or "" for a success.
func (r Result[T]) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Message
}

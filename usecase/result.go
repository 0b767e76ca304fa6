package usecase

// Result is the outcome of one asynchronous fetch: data on success or the
// error that ended it.
type Result[T any] struct {
	Data T
	Err  error
}

func Success[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

func Failure[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// OK reports whether the fetch succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

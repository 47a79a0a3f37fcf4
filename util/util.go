package util

// ErrWrap returns a closure unwrapping a (value, error) pair
// to the given fallback in case of error
func ErrWrap[T any](fallback T) func(T, error) T {
	return func(result T, err error) T {
		if err != nil {
			return fallback
		}
		return result
	}
}

// ErrSuppress swallows an error for the
// cases in which it is safe to ignore
func ErrSuppress(_ error) {
}

// ErrOnly drops the value of a (value, error)
// pair, keeping the error alone
func ErrOnly[T any](_ T, err error) error {
	return err
}

// Fallback returns the first string, unless
// empty, in which case it returns the second
func Fallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

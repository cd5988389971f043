package scottvm

import "github.com/cockroachdb/errors"

// LoadError is returned when a database image cannot be turned into a
// GameData: no valid header, a section whose fingerprint never passes before
// the image ends, or a packed string that fails to decode. Reading the file
// itself is the caller's job and is not reported through LoadError. Per the
// load-fatal contract, the caller is expected to print this and exit rather
// than try to recover.
type LoadError struct {
	cause error
}

func (e *LoadError) Error() string { return e.cause.Error() }
func (e *LoadError) Unwrap() error { return e.cause }

func newLoadError(format string, args ...any) error {
	return &LoadError{cause: errors.Newf(format, args...)}
}

func wrapLoadError(cause error, format string, args ...any) error {
	return &LoadError{cause: errors.Wrapf(cause, format, args...)}
}

// DecodeError is returned by DecodeString when a packed string would exceed
// the 255-byte output limit, or when its directory hops or its body run past
// the end of the image. During database loading the loader wraps it in a
// LoadError and the load fails; there is no retry at another offset.
type DecodeError struct {
	Index int
}

func (e *DecodeError) Error() string {
	return errors.Newf("string %d cannot be decoded: it runs past the end of the image or exceeds 255 bytes", e.Index).Error()
}

package steps

import (
	"context"
	"errors"

	types "github.com/aulagen/aulagen-backend/internal/domain"
)

// KindError tags an error with the taxonomy kind the result map reports.
// Steps wrap their failures in one of these; anything untagged that escapes a
// branch is a plain publish failure.
type KindError struct {
	Kind string
	Err  error
}

func (e *KindError) Error() string {
	if e == nil || e.Err == nil {
		return e.Kind
	}
	return e.Err.Error()
}

func (e *KindError) Unwrap() error { return e.Err }

func uploadFailed(err error) error {
	return &KindError{Kind: types.ErrKindUploadFailed, Err: err}
}

func permissionFailed(err error) error {
	return &KindError{Kind: types.ErrKindPermissionFailed, Err: err}
}

func invalidPayload(err error) error {
	return &KindError{Kind: types.ErrKindInvalidPayload, Err: err}
}

// ErrorKind maps an arbitrary branch error onto the result taxonomy.
func ErrorKind(err error) string {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.ErrKindTimeout
	}
	return types.ErrKindPublishFailed
}

package promptgen

import "errors"

// FailureMessage is the only text a user ever sees when generation fails.
const FailureMessage = "生成失败，请稍后重试。"

var (
	ErrUpstream = errors.New("upstream call failed")
	ErrDecode   = errors.New("response does not match prompt schema")
)

// GenerationError hides the cause behind FailureMessage. Kind is ErrUpstream
// or ErrDecode; both remain reachable through errors.Is.
type GenerationError struct {
	Kind  error
	Cause error
}

func (e *GenerationError) Error() string {
	return FailureMessage
}

func (e *GenerationError) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}


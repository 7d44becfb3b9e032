package llm

import "errors"

var (
	// ErrUnavailable indicates the generation service is unreachable.
	ErrUnavailable = errors.New("generation service unavailable")

	// ErrTimeout indicates the generation request exceeded its timeout.
	ErrTimeout = errors.New("generation request timed out")

	// ErrSafetyFiltered indicates the service refused to answer.
	ErrSafetyFiltered = errors.New("generation blocked by safety filter")

	// ErrEmptyResponse indicates the service returned no text.
	ErrEmptyResponse = errors.New("generation returned empty response")

	// ErrMalformedOutput indicates the response text could not be parsed
	// into the expected JSON structure.
	ErrMalformedOutput = errors.New("malformed generation output")
)

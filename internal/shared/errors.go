package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Transport and application errors
	ErrConnection     = fmt.Errorf("connection error")
	ErrAPIRequest     = fmt.Errorf("API request failed")
	ErrAnalysisFailed = fmt.Errorf("analysis failed")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// Capture and playback errors
	ErrCameraUnavailable = fmt.Errorf("camera unavailable")
	ErrCaptureDisabled   = fmt.Errorf("capture disabled")
	ErrNoPreview         = fmt.Errorf("no preview available")

	// Detection pipeline errors
	ErrEmptyInput = fmt.Errorf("empty input")
	ErrBusy       = fmt.Errorf("submission already in flight")
	ErrNoSession  = fmt.Errorf("no active session")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

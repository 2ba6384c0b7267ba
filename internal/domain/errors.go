package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four failure families of the backend gateway.
var (
	// ErrAnalysis indicates repository submission failed.
	ErrAnalysis = errors.New("repository analysis failed")

	// ErrFetch indicates file content could not be retrieved.
	ErrFetch = errors.New("file content unavailable")

	// ErrChat indicates the assistant call failed.
	ErrChat = errors.New("assistant call failed")

	// ErrAgent indicates an agent invocation failed.
	ErrAgent = errors.New("agent invocation failed")
)

// AnalysisError is returned when the analysis backend rejects or fails a
// repository submission. Message carries the backend-supplied text when any.
type AnalysisError struct {
	URL     string
	Status  int
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	return describe(e.Message, "failed to analyze repository", e.Status, e.Err)
}

// Is matches ErrAnalysis.
func (e *AnalysisError) Is(target error) bool { return target == ErrAnalysis }

// Unwrap returns the underlying cause.
func (e *AnalysisError) Unwrap() error { return e.Err }

// FetchError is returned when file content cannot be fetched.
type FetchError struct {
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return describe(e.Message, "failed to fetch file content", e.Status, e.Err)
}

// Is matches ErrFetch.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// ChatError is returned when the assistant does not produce an answer.
type ChatError struct {
	Status  int
	Message string
	Err     error
}

func (e *ChatError) Error() string {
	return describe(e.Message, "failed to get explanation", e.Status, e.Err)
}

// Is matches ErrChat.
func (e *ChatError) Is(target error) bool { return target == ErrChat }

// Unwrap returns the underlying cause.
func (e *ChatError) Unwrap() error { return e.Err }

// AgentError is returned when an agent run fails for any reason.
type AgentError struct {
	Kind    AgentKind
	Status  int
	Message string
	Err     error
}

func (e *AgentError) Error() string {
	return describe(e.Message, fmt.Sprintf("failed to run %s agent", e.Kind), e.Status, e.Err)
}

// Is matches ErrAgent.
func (e *AgentError) Is(target error) bool { return target == ErrAgent }

// Unwrap returns the underlying cause.
func (e *AgentError) Unwrap() error { return e.Err }

func describe(message, fallback string, status int, cause error) string {
	msg := message
	if msg == "" {
		msg = fallback
	}
	switch {
	case status != 0 && cause != nil:
		return fmt.Sprintf("%s (status %d): %v", msg, status, cause)
	case status != 0:
		return fmt.Sprintf("%s (status %d)", msg, status)
	case cause != nil:
		return fmt.Sprintf("%s: %v", msg, cause)
	}
	return msg
}

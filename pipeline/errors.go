package pipeline

import "fmt"

// LookupError marks a transport or parsing failure while
// resolving a source: distinct from a genuine "nothing
// matched" outcome, which is not a fault at all
type LookupError struct {
	Err error
}

func (err *LookupError) Error() string {
	return fmt.Sprintf("source lookup failed: %s", err.Err)
}

func (err *LookupError) Unwrap() error {
	return err.Err
}

// FetchError marks a failed audio retrieval
type FetchError struct {
	Err error
}

func (err *FetchError) Error() string {
	return fmt.Sprintf("audio fetch failed: %s", err.Err)
}

func (err *FetchError) Unwrap() error {
	return err.Err
}

// ConversionError marks a failed transcode: the full
// diagnostic is persisted at Report, the message only
// references it
type ConversionError struct {
	Report string
}

func (err *ConversionError) Error() string {
	if err.Report == "" {
		return "conversion failed"
	}
	return fmt.Sprintf("conversion failed, diagnostic at %s", err.Report)
}

// EmbedError marks a failed tagging step, fatal
// to its item and not retried
type EmbedError struct {
	Err error
}

func (err *EmbedError) Error() string {
	return fmt.Sprintf("metadata embedding failed: %s", err.Err)
}

func (err *EmbedError) Unwrap() error {
	return err.Err
}

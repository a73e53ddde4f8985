package export

import (
	"errors"
	"fmt"
)

// Kind classifies why an export failed. Each kind has its own remedy.
type Kind string

const (
	KindInputAbsent             Kind = "input_absent"
	KindGradientIncompatibility Kind = "gradient_incompatibility"
	KindRasterizationFailure    Kind = "rasterization_failure"
	KindImageConversionFailure  Kind = "image_conversion_failure"
	KindPrintFailure            Kind = "print_failure"
	KindUnknown                 Kind = "unknown"
)

// ErrGradientUnsupported is returned by rasterizers that are handed a
// gradient they cannot paint.
var ErrGradientUnsupported = errors.New("gradient color stop not supported by rasterizer")

// Error is the single error type leaving the export pipeline.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Remedy is the next step offered to the user for this failure.
func (e *Error) Remedy() string { return e.Kind.Remedy() }

// Fallback names the export strategy to offer instead, or "" when retrying
// cannot help.
func (e *Error) Fallback() string {
	if e.Kind == KindInputAbsent {
		return ""
	}
	return StrategyText
}

func (k Kind) Remedy() string {
	switch k {
	case KindInputAbsent:
		return "Nothing to export. Open a resume preview and try again."
	case KindGradientIncompatibility:
		return "This template uses a gradient the PDF renderer cannot draw. Download the simple text PDF instead."
	case KindRasterizationFailure:
		return "The preview could not be captured. Try again, or download the simple text PDF."
	case KindImageConversionFailure:
		return "The captured preview could not be converted for the PDF. Try again, or download the simple text PDF."
	case KindPrintFailure:
		return "The browser could not print the resume to PDF. Try again, or download the simple text PDF."
	}
	return "PDF generation failed. Download the simple text PDF instead."
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Classify maps any error to an export Error. Errors that are already
// classified keep their kind.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, ErrGradientUnsupported) {
		return newError(KindGradientIncompatibility, err)
	}
	return newError(KindUnknown, err)
}

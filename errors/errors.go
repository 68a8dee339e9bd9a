package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the custom error type carried across application layers
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Upload / ingest errors
func ErrNoAudioFile() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_NO_AUDIO_FILE,
		Message:  "No audio file provided",
	}
}

func ErrInvalidFileType(mimeType string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_FILE_TYPE,
		Message:  "Invalid file type. Only audio files are allowed.",
	}.WithDetail("mime_type", mimeType)
}

func ErrFileTooLarge(size, maxSize int64) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_FILE_TOO_LARGE,
		Message:  "File too large",
	}.WithDetail("size", fmt.Sprintf("%d", size)).
		WithDetail("max_size", fmt.Sprintf("%d", maxSize))
}

func ErrMissingTranscriptData() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MISSING_TRANSCRIPT_DATA,
		Message:  "Transcript data is required",
	}
}

func ErrMissingText() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MISSING_TEXT,
		Message:  "Text is required for sentiment analysis",
	}
}

// Media errors
func ErrTranscodeFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_TRANSCODE_FAILED,
		Message:  "Audio conversion failed",
	}
}

// Model gateway errors
func ErrModelUnavailable(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_MODEL_UNAVAILABLE,
		Message:  "Model service unavailable",
	}
}

func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_TRANSCRIPTION_FAILED,
		Message:  "Transcription failed",
	}
}

func ErrSummaryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_SUMMARY_FAILED,
		Message:  "Summary generation failed",
	}
}

func ErrSentimentFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_SENTIMENT_FAILED,
		Message:  "Sentiment analysis failed",
	}
}

func ErrActionItemsFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_ACTION_ITEMS_FAILED,
		Message:  "Action items extraction failed",
	}
}

// Storage errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

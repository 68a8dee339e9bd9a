package errors

// ErrorCode identifies an application error condition
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1002

	ErrorCode_NO_AUDIO_FILE           ErrorCode = 2000
	ErrorCode_INVALID_FILE_TYPE       ErrorCode = 2001
	ErrorCode_FILE_TOO_LARGE          ErrorCode = 2002
	ErrorCode_MISSING_TRANSCRIPT_DATA ErrorCode = 2003
	ErrorCode_MISSING_TEXT            ErrorCode = 2004

	ErrorCode_TRANSCODE_FAILED ErrorCode = 3000

	ErrorCode_MODEL_UNAVAILABLE    ErrorCode = 4000
	ErrorCode_TRANSCRIPTION_FAILED ErrorCode = 4001
	ErrorCode_SUMMARY_FAILED       ErrorCode = 4002
	ErrorCode_SENTIMENT_FAILED     ErrorCode = 4003
	ErrorCode_ACTION_ITEMS_FAILED  ErrorCode = 4004

	ErrorCode_STORAGE_FAILED ErrorCode = 5000
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                 "OK",
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:         "INVALID_PAYLOAD",
	ErrorCode_NO_AUDIO_FILE:           "NO_AUDIO_FILE",
	ErrorCode_INVALID_FILE_TYPE:       "INVALID_FILE_TYPE",
	ErrorCode_FILE_TOO_LARGE:          "FILE_TOO_LARGE",
	ErrorCode_MISSING_TRANSCRIPT_DATA: "MISSING_TRANSCRIPT_DATA",
	ErrorCode_MISSING_TEXT:            "MISSING_TEXT",
	ErrorCode_TRANSCODE_FAILED:        "TRANSCODE_FAILED",
	ErrorCode_MODEL_UNAVAILABLE:       "MODEL_UNAVAILABLE",
	ErrorCode_TRANSCRIPTION_FAILED:    "TRANSCRIPTION_FAILED",
	ErrorCode_SUMMARY_FAILED:          "SUMMARY_FAILED",
	ErrorCode_SENTIMENT_FAILED:        "SENTIMENT_FAILED",
	ErrorCode_ACTION_ITEMS_FAILED:     "ACTION_ITEMS_FAILED",
	ErrorCode_STORAGE_FAILED:          "STORAGE_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

package entities

// TranscriptSegment is a single speaker turn in the transcript, ordered
// by start time. Overlapping segments from different speakers are allowed.
type TranscriptSegment struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	StartTime  float64 `json:"startTime"`
	EndTime    float64 `json:"endTime"`
	Confidence float64 `json:"confidence"`
}

// SpeakerProfile describes one diarized voice. Speaking percentages are
// model-derived and are not guaranteed to sum to 100.
type SpeakerProfile struct {
	ID                 string  `json:"id"`
	TotalSpeakingTime  float64 `json:"totalSpeakingTime"`
	SpeakingPercentage float64 `json:"speakingPercentage"`
	Characteristics    string  `json:"characteristics"`
}

// KeyTopic is a topic the model identified in the conversation
type KeyTopic struct {
	Topic      string  `json:"topic"`
	StartTime  float64 `json:"startTime"`
	EndTime    float64 `json:"endTime"`
	Importance string  `json:"importance"`
}

// TranscriptionDocument is the full transcription result for one audio file
type TranscriptionDocument struct {
	Transcript   []TranscriptSegment `json:"transcript"`
	Speakers     []SpeakerProfile    `json:"speakers"`
	KeyTopics    []KeyTopic          `json:"keyTopics"`
	ActionItems  []ActionItem        `json:"actionItems"`
	Summary      string              `json:"summary"`
	Duration     float64             `json:"duration"`
	WordCount    int                 `json:"wordCount"`
	SpeakingRate float64             `json:"speakingRate"`
}

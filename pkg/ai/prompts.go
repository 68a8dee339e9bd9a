package ai

import "fmt"

// Prompt templates for the four model invocation kinds. The instruction
// text pins the exact JSON shape the response normalizer expects back.

const transcribePrompt = `
Please transcribe this audio file and provide a detailed analysis including:

1. Full transcript with speaker identification (Speaker 1, Speaker 2, etc.)
2. Timestamps for each speaker segment
3. Speaker diarization analysis (distinguish between different voices)
4. Key topics discussed
5. Action items mentioned
6. Meeting summary

Format the response as JSON with the following structure:
{
  "transcript": [
    {
      "speaker": "Speaker 1",
      "text": "transcribed text here",
      "startTime": 0.0,
      "endTime": 5.2,
      "confidence": 0.95
    }
  ],
  "speakers": [
    {
      "id": "Speaker 1",
      "totalSpeakingTime": 120.5,
      "speakingPercentage": 45.2,
      "characteristics": "description of voice characteristics"
    }
  ],
  "keyTopics": [
    {
      "topic": "topic name",
      "startTime": 0.0,
      "endTime": 30.0,
      "importance": "high|medium|low"
    }
  ],
  "actionItems": [
    {
      "task": "action item description",
      "assignee": "person mentioned",
      "priority": "high|medium|low",
      "timestamp": 45.2
    }
  ],
  "summary": "overall meeting summary",
  "duration": 1800.5,
  "wordCount": 2500,
  "speakingRate": 1.4
}

Please ensure accurate speaker identification and provide timestamps in seconds.
`

const summaryPromptFmt = `
Based on this meeting transcript data, please provide a comprehensive analysis:

Transcript Data: %s

Please provide:
1. Executive Summary (2-3 sentences)
2. Key Decisions Made
3. Action Items with priorities and assignees
4. Important Discussion Points
5. Next Steps
6. Meeting Sentiment Analysis

Format as JSON:
{
  "executiveSummary": "brief summary",
  "keyDecisions": ["decision 1", "decision 2"],
  "actionItems": [
    {
      "task": "action description",
      "assignee": "person",
      "priority": "high|medium|low",
      "dueDate": "if mentioned",
      "timestamp": 45.2
    }
  ],
  "discussionPoints": [
    {
      "topic": "topic name",
      "description": "what was discussed",
      "timestamp": 30.0,
      "importance": "high|medium|low"
    }
  ],
  "nextSteps": ["next step 1", "next step 2"],
  "sentiment": {
    "overall": "positive|neutral|negative",
    "score": 0.8,
    "highlights": ["positive aspect 1", "positive aspect 2"]
  }
}
`

const sentimentPromptFmt = `
Analyze the sentiment of this meeting transcript text and provide:
1. Overall sentiment (positive, neutral, negative)
2. Sentiment score (0-1)
3. Key positive highlights
4. Key negative highlights
5. Emotional tone analysis

Text: %s

Format as JSON:
{
  "overall": "positive|neutral|negative",
  "score": 0.8,
  "positiveHighlights": ["highlight 1", "highlight 2"],
  "negativeHighlights": ["highlight 1", "highlight 2"],
  "emotionalTone": {
    "professional": 0.9,
    "collaborative": 0.8,
    "frustrated": 0.2,
    "excited": 0.7,
    "concerned": 0.3
  },
  "recommendations": ["recommendation 1", "recommendation 2"]
}
`

const actionItemsPromptFmt = `
Extract action items from this meeting transcript data:

%s

For each action item, provide:
1. Task description
2. Assigned person (if mentioned)
3. Priority level
4. Due date (if mentioned)
5. Timestamp in the meeting
6. Context/notes

Format as JSON:
{
  "actionItems": [
    {
      "id": "unique_id",
      "task": "action item description",
      "assignee": "person name or 'TBD'",
      "priority": "high|medium|low",
      "dueDate": "date if mentioned or null",
      "timestamp": 45.2,
      "context": "additional context",
      "status": "pending"
    }
  ],
  "totalCount": 5,
  "highPriorityCount": 2,
  "mediumPriorityCount": 2,
  "lowPriorityCount": 1
}
`

// TranscribePrompt returns the diarized transcription instruction.
// The audio itself travels as inline data next to the prompt.
func TranscribePrompt() string {
	return transcribePrompt
}

// SummaryPrompt interpolates the transcript JSON into the summary instruction
func SummaryPrompt(transcriptJSON string) string {
	return fmt.Sprintf(summaryPromptFmt, transcriptJSON)
}

// SentimentPrompt interpolates the text into the sentiment instruction
func SentimentPrompt(text string) string {
	return fmt.Sprintf(sentimentPromptFmt, text)
}

// ActionItemsPrompt interpolates the transcript JSON into the extraction instruction
func ActionItemsPrompt(transcriptJSON string) string {
	return fmt.Sprintf(actionItemsPromptFmt, transcriptJSON)
}

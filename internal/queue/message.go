package queue

import "encoding/json"

// Message is the analysis task payload sent to downstream queue consumers.
// The profile is intentionally absent: the task runner re-fetches the owner's
// current profile at execution time.
type Message struct {
	AnalysisID         string `json:"analysisId"`
	UserID             string `json:"userId"`
	JobDescriptionID   string `json:"jobDescriptionId,omitempty"`
	JobDescriptionText string `json:"jobDescriptionText"`
	RequestID          string `json:"requestId,omitempty"`
	EnqueuedAt         string `json:"enqueuedAt"`
	Version            int    `json:"version"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

package model

import "time"

// QuestionStatus enumerates the lifecycle states of a question.
type QuestionStatus string

const (
	QuestionStatusPending  QuestionStatus = "pending"
	QuestionStatusAnswered QuestionStatus = "answered"
	QuestionStatusFailed   QuestionStatus = "failed"
)

// Valid reports whether s is one of the known status values.
func (s QuestionStatus) Valid() bool {
	switch s {
	case QuestionStatusPending, QuestionStatusAnswered, QuestionStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s is a final state. A question transitions exactly
// once, from pending to either answered or failed, and never again.
func (s QuestionStatus) Terminal() bool {
	return s == QuestionStatusAnswered || s == QuestionStatusFailed
}

// Question is a user-submitted query tied to one document. Answer is nil
// exactly while the status is pending; it is populated together with the
// transition to a terminal state.
type Question struct {
	ID           string         `json:"id"`
	DocumentID   string         `json:"document_id"`
	QuestionText string         `json:"question_text"`
	Answer       *string        `json:"answer"`
	Status       QuestionStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

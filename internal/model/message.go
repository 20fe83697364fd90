package model

import "time"

// Message is one inbound SMS awaiting classification.
type Message struct {
	Sender     string    `json:"sender"`
	Body       string    `json:"message"`
	ReceivedAt time.Time `json:"received_at,omitzero"`
}

package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewErrorMessage encodes an error message for a client.
func NewErrorMessage(msg string) []byte {
	payload, _ := json.Marshal(Message{Action: "error", Payload: msg})
	return payload
}

package models

// ChatRequest asks to open a chat with the user behind the given email.
type ChatRequest struct {
	Recipient string `json:"recipient"`
}

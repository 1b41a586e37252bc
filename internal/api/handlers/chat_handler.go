package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isdelr/classmate-be/internal/chat"
)

// ChatHandler forwards prompts to the chat relay.
type ChatHandler struct {
	relay *chat.Relay
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(relay *chat.Relay) *ChatHandler {
	return &ChatHandler{relay: relay}
}

// ChatPayload defines the structure for chat requests.
type ChatPayload struct {
	Prompt string `json:"prompt"`
}

// Send relays a prompt upstream. The response is always 200 with a reply
// value; upstream failures are folded into the reply text by the relay.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var payload ChatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	flag := r.URL.Query().Get("as_markdown")
	asMarkdown := flag == "true" || flag == "1"
	reply := h.relay.Send(r.Context(), payload.Prompt, asMarkdown)

	writeJSON(w, map[string]string{"reply": reply})
}

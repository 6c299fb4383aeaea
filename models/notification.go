package models

// PushPayload is the task payload for a queued push notification. Sends
// are fire-and-forget: the engine enqueues and moves on.
type PushPayload struct {
	// Target is "guest" or "driver".
	Target string            `json:"target"`
	ID     string            `json:"id"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

package dto

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
	Token     string `json:"token"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

// ActivityFeedMessage is pushed over the live websocket feed whenever an
// action is tracked.
type ActivityFeedMessage struct {
	SessionId string                 `json:"session_id"`
	Action    string                 `json:"action"`
	Page      string                 `json:"page"`
	Timestamp string                 `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

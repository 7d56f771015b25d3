package dto

type ChatRequest struct {
	Message      string `json:"message" validate:"required"`
	ReadingLevel string `json:"reading_level"` // simple, standard, expert
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

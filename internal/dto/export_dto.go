package dto

type ExportSection struct {
	Title string `json:"title"`
	Body  string `json:"body" validate:"required"`
}

type ExportRequest struct {
	Title    string            `json:"title" validate:"required"`
	Body     string            `json:"body"`
	Sections []ExportSection   `json:"sections"`
	Metadata map[string]string `json:"metadata"`
	Email    string            `json:"email" validate:"omitempty,email"`
}

type ExportResponse struct {
	Path    string `json:"path"`
	Emailed bool   `json:"emailed"`
}

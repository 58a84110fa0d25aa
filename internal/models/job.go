package models

import "time"

// JobPayload is the body of POST /jobs and PUT /jobs/{id}.
// The backend generates the final description from these inputs.
type JobPayload struct {
	JobTitle         string `json:"job_title" validate:"required,max=255"`
	CompanyName      string `json:"company_name" validate:"required,max=255"`
	Department       string `json:"department,omitempty" validate:"max=255"`
	Location         string `json:"location,omitempty" validate:"max=255"`
	Level            string `json:"level,omitempty" validate:"max=100"`
	ToneStyle        string `json:"tone_style,omitempty" validate:"max=100"`
	Skills           string `json:"skills,omitempty"`
	Responsibilities string `json:"responsibilities,omitempty"`
	AdditionalData   string `json:"additional_data,omitempty"`
	InputDescription string `json:"input_description,omitempty"`
}

type Job struct {
	JobPayload
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	OutputDescription map[string]any `json:"output_description,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

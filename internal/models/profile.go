package models

import "time"

// CandidateProfile mirrors the backend's candidate profile response.
type CandidateProfile struct {
	ID                   string         `json:"id"`
	UserID               string         `json:"user_id"`
	FirstName            string         `json:"first_name,omitempty"`
	LastName             string         `json:"last_name,omitempty"`
	Title                string         `json:"title,omitempty"`
	ImageURL             string         `json:"image_url,omitempty"`
	Phone                string         `json:"phone,omitempty"`
	Location             string         `json:"location,omitempty"`
	Skills               string         `json:"skills,omitempty"`
	ProfileSummary       string         `json:"profile_summary,omitempty"`
	TotalYearsExperience string         `json:"total_years_experience,omitempty"`
	NoticePeriod         string         `json:"notice_period,omitempty"`
	ExpectedSalary       string         `json:"expected_salary,omitempty"`
	PreferredMode        string         `json:"preferred_mode,omitempty"`
	Profiles             map[string]any `json:"profiles,omitempty"`
	Languages            any            `json:"languages,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`

	EducationRecords []EducationRecord      `json:"education_records,omitempty"`
	WorkExperiences  []WorkExperienceRecord `json:"work_experiences,omitempty"`
}

type EducationRecord struct {
	ID              string `json:"id"`
	InstitutionName string `json:"institution_name,omitempty"`
	Degree          string `json:"degree,omitempty"`
	FieldOfStudy    string `json:"field_of_study,omitempty"`
	StartYear       *int   `json:"start_year,omitempty"`
	EndYear         *int   `json:"end_year,omitempty"`
	GPA             string `json:"gpa,omitempty"`
}

type WorkExperienceRecord struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// CandidateCreated is the body of a successful POST /candidates.
type CandidateCreated struct {
	User             User                   `json:"user"`
	Profile          CandidateProfile       `json:"profile"`
	WorkExperiences  []WorkExperienceRecord `json:"work_experiences"`
	EducationRecords []EducationRecord      `json:"education_records"`
}

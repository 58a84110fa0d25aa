// Package wizard holds the candidate profile wizard: the draft record,
// per-section validation, pure draft transforms and the step controller.
package wizard

import "maps"

// DefaultCountryCode is prefixed to the phone number when the draft carries none.
const DefaultCountryCode = "+31"

type Contact struct {
	Phone            string `json:"phone"`
	PhoneCountryCode string `json:"phone_country_code,omitempty"`
	Email            string `json:"email"`
	Location         string `json:"location"`
	PostalCode       string `json:"pincode"`
	LinkedIn         string `json:"linkedin,omitempty"`
	GitHub           string `json:"github,omitempty"`
	Portfolio        string `json:"portfolio,omitempty"`
	Twitter          string `json:"twitter,omitempty"`
}

type Education struct {
	Years       string `json:"years"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Percentage  string `json:"percentage"`
}

type Work struct {
	Company          string   `json:"company"`
	Duration         string   `json:"duration"`
	Role             string   `json:"role"`
	Responsibilities []string `json:"responsibilities"`
}

type Project struct {
	Title       string `json:"title"`
	Role        string `json:"role"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

// Preferences are the optional job preferences a recruiter records for a
// candidate.
type Preferences struct {
	TotalYearsExperience string   `json:"total_years_experience,omitempty"`
	NoticePeriod         string   `json:"notice_period,omitempty"`
	SalaryCurrency       string   `json:"salary_currency,omitempty"`
	SalaryMin            string   `json:"salary_min,omitempty"`
	SalaryMax            string   `json:"salary_max,omitempty"`
	WorkTypes            []string `json:"work_types,omitempty"`
}

// Draft is a candidate profile that has not been submitted yet.
type Draft struct {
	Title          string      `json:"title"`
	FullName       string      `json:"full_name,omitempty"`
	ImageURL       string      `json:"image_url,omitempty"`
	Contact        Contact     `json:"contact"`
	Education      []Education `json:"education"`
	Skills         []string    `json:"skills"`
	Languages      []string    `json:"languages"`
	Summary        string      `json:"profile"`
	WorkExperience []Work      `json:"workExperience"`
	Projects       []Project   `json:"projects"`
	Preferences    Preferences `json:"preferences"`

	// LanguageLevels maps a language tag to its proficiency.
	LanguageLevels map[string]string `json:"languageLevels,omitempty"`
}

// NewDraft returns the blank draft the wizard starts from: one empty
// education record and one empty work record with a single blank bullet.
func NewDraft() Draft {
	return Draft{
		Education:      []Education{{}},
		Skills:         []string{},
		Languages:      []string{},
		WorkExperience: []Work{newWork()},
		Projects:       []Project{},
	}
}

func newWork() Work {
	return Work{Responsibilities: []string{""}}
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	out := d
	out.Education = cloneSlice(d.Education)
	out.Skills = cloneSlice(d.Skills)
	out.Languages = cloneSlice(d.Languages)
	out.Projects = cloneSlice(d.Projects)
	out.Preferences.WorkTypes = cloneSlice(d.Preferences.WorkTypes)
	out.LanguageLevels = maps.Clone(d.LanguageLevels)
	out.WorkExperience = cloneSlice(d.WorkExperience)
	for i := range out.WorkExperience {
		out.WorkExperience[i].Responsibilities = cloneSlice(out.WorkExperience[i].Responsibilities)
	}
	return out
}

// cloneSlice copies s, keeping nil and empty apart so the JSON view stays stable.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

package wizard

import (
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Payload is the flat body of POST /candidates.
type Payload struct {
	Email           string                   `json:"email"`
	FirstName       string                   `json:"first_name"`
	LastName        string                   `json:"last_name"`
	Title           string                   `json:"title"`
	ImageURL        string                   `json:"image_url,omitempty"`
	Phone           string                   `json:"phone"`
	Location        string                   `json:"location"`
	PostalCode      string                   `json:"postal_code"`
	Skills          string                   `json:"skills"`
	ProfileSummary  string                   `json:"profile_summary"`
	TotalYears      string                   `json:"total_years_experience,omitempty"`
	NoticePeriod    string                   `json:"notice_period,omitempty"`
	ExpectedSalary  string                   `json:"expected_salary,omitempty"`
	PreferredMode   string                   `json:"preferred_mode,omitempty"`
	Languages       map[string]LanguageLevel `json:"languages"`
	Profiles        map[string]string        `json:"profiles"`
	Education       []EducationPayload       `json:"education"`
	WorkExperiences []WorkExperiencePayload  `json:"work_experiences"`
	Projects        []ProjectPayload         `json:"projects"`
}

type LanguageLevel struct {
	Proficiency string `json:"proficiency"`
}

type EducationPayload struct {
	InstitutionName string `json:"institution_name"`
	Degree          string `json:"degree"`
	StartYear       *int   `json:"start_year"`
	EndYear         *int   `json:"end_year"`
	GPA             string `json:"gpa"`
	Years           string `json:"years"`
}

type WorkExperiencePayload struct {
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type ProjectPayload struct {
	Title       string `json:"title"`
	Role        string `json:"role"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

var textPolicy = bluemonday.StrictPolicy()

// clean trims s and strips any markup from it. The policy escapes what it
// keeps, so entities are decoded again afterwards.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(strings.TrimSpace(s))))
}

// DefaultSalaryCurrency prefixes the expected salary range when the draft
// names no currency.
const DefaultSalaryCurrency = "USD"

// BuildPayload flattens a draft into the backend's request shape.
func BuildPayload(d Draft) Payload {
	first, last := splitName(clean(d.FullName))

	p := Payload{
		Email:          strings.TrimSpace(d.Contact.Email),
		FirstName:      first,
		LastName:       last,
		Title:          clean(d.Title),
		ImageURL:       strings.TrimSpace(d.ImageURL),
		Phone:          phoneWithCode(d.Contact),
		Location:       clean(d.Contact.Location),
		PostalCode:     clean(d.Contact.PostalCode),
		ProfileSummary: clean(d.Summary),
		TotalYears:     clean(d.Preferences.TotalYearsExperience),
		NoticePeriod:   clean(d.Preferences.NoticePeriod),
		ExpectedSalary: salaryRange(d.Preferences),
		Languages:      map[string]LanguageLevel{},
		Profiles: map[string]string{
			"linkedin":  strings.TrimSpace(d.Contact.LinkedIn),
			"github":    strings.TrimSpace(d.Contact.GitHub),
			"portfolio": strings.TrimSpace(d.Contact.Portfolio),
			"twitter":   strings.TrimSpace(d.Contact.Twitter),
		},
		Education:       make([]EducationPayload, 0, len(d.Education)),
		WorkExperiences: make([]WorkExperiencePayload, 0, len(d.WorkExperience)),
		Projects:        make([]ProjectPayload, 0, len(d.Projects)),
	}

	skills := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		if s = clean(s); s != "" {
			skills = append(skills, s)
		}
	}
	p.Skills = strings.Join(skills, ", ")

	modes := make([]string, 0, len(d.Preferences.WorkTypes))
	for _, m := range d.Preferences.WorkTypes {
		if m = clean(m); m != "" {
			modes = append(modes, m)
		}
	}
	p.PreferredMode = strings.Join(modes, ", ")

	for _, raw := range d.Languages {
		if l := clean(raw); l != "" {
			p.Languages[l] = LanguageLevel{Proficiency: clean(d.LanguageLevels[raw])}
		}
	}

	for _, e := range d.Education {
		start, end := parseYears(e.Years)
		p.Education = append(p.Education, EducationPayload{
			InstitutionName: clean(e.Institution),
			Degree:          clean(e.Degree),
			StartYear:       start,
			EndYear:         end,
			GPA:             clean(e.Percentage),
			Years:           strings.TrimSpace(e.Years),
		})
	}

	for _, w := range d.WorkExperience {
		bullets := make([]string, 0, len(w.Responsibilities))
		for _, r := range w.Responsibilities {
			if r = clean(r); r != "" {
				bullets = append(bullets, r)
			}
		}
		p.WorkExperiences = append(p.WorkExperiences, WorkExperiencePayload{
			CompanyName: clean(w.Company),
			JobTitle:    clean(w.Role),
			Duration:    clean(w.Duration),
			Description: strings.Join(bullets, "\n"),
		})
	}

	for _, pr := range d.Projects {
		p.Projects = append(p.Projects, ProjectPayload{
			Title:       clean(pr.Title),
			Role:        clean(pr.Role),
			Year:        clean(pr.Year),
			Description: clean(pr.Description),
		})
	}

	return p
}

// salaryRange renders "<currency> <min> - <max>", or "" unless both bounds
// are set.
func salaryRange(p Preferences) string {
	lo, hi := clean(p.SalaryMin), clean(p.SalaryMax)
	if lo == "" || hi == "" {
		return ""
	}
	cur := clean(p.SalaryCurrency)
	if cur == "" {
		cur = DefaultSalaryCurrency
	}
	return cur + " " + lo + " - " + hi
}

func phoneWithCode(c Contact) string {
	phone := strings.TrimSpace(c.Phone)
	if phone == "" {
		return ""
	}
	code := strings.TrimSpace(c.PhoneCountryCode)
	if code == "" {
		code = DefaultCountryCode
	}
	return code + phone
}

func splitName(full string) (first, last string) {
	fields := strings.Fields(full)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

// parseYears reads "2018-2022", "2018 - 2022" or "2020". Parts that are not
// four-digit years come back nil.
func parseYears(s string) (start, end *int) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '–' || r == '/' || r == ' '
	})
	year := func(v string) *int {
		if len(v) != 4 {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil
		}
		return &n
	}
	switch len(parts) {
	case 0:
		return nil, nil
	case 1:
		return year(parts[0]), nil
	default:
		return year(parts[0]), year(parts[len(parts)-1])
	}
}

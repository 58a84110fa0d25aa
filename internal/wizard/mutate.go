package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrIndexOutOfRange is returned when a transform addresses a list entry
// that does not exist. The draft is left as it was.
var ErrIndexOutOfRange = errors.New("index out of range")

type IdentityField int

const (
	FieldTitle IdentityField = iota
	FieldFullName
	FieldImageURL
	FieldPhone
	FieldPhoneCountryCode
	FieldEmail
	FieldLocation
	FieldPostalCode
	FieldLinkedIn
	FieldGitHub
	FieldPortfolio
	FieldTwitter
)

type EducationField int

const (
	EducationYears EducationField = iota
	EducationInstitution
	EducationDegree
	EducationPercentage
)

type WorkField int

const (
	WorkCompany WorkField = iota
	WorkDuration
	WorkRole
)

type PreferenceField int

const (
	PrefTotalYearsExperience PreferenceField = iota
	PrefNoticePeriod
	PrefSalaryCurrency
	PrefSalaryMin
	PrefSalaryMax
)

type ProjectField int

const (
	ProjectTitle ProjectField = iota
	ProjectRole
	ProjectYear
	ProjectDescription
)

// ListName names the repeatable record lists of a draft.
type ListName int

const (
	ListEducation ListName = iota
	ListWorkExperience
	ListProjects
)

// TagSet names the free-text tag sets of a draft.
type TagSet int

const (
	TagSkills TagSet = iota
	TagLanguages
	TagWorkTypes
)

func outOfRange(list string, i, n int) error {
	return fmt.Errorf("%s[%d] (len %d): %w", list, i, n, ErrIndexOutOfRange)
}

// SetIdentity sets a scalar identity or contact field.
func SetIdentity(d Draft, f IdentityField, v string) (Draft, error) {
	out := d.Clone()
	switch f {
	case FieldTitle:
		out.Title = v
	case FieldFullName:
		out.FullName = v
	case FieldImageURL:
		out.ImageURL = v
	case FieldPhone:
		out.Contact.Phone = v
	case FieldPhoneCountryCode:
		out.Contact.PhoneCountryCode = v
	case FieldEmail:
		out.Contact.Email = v
	case FieldLocation:
		out.Contact.Location = v
	case FieldPostalCode:
		out.Contact.PostalCode = v
	case FieldLinkedIn:
		out.Contact.LinkedIn = v
	case FieldGitHub:
		out.Contact.GitHub = v
	case FieldPortfolio:
		out.Contact.Portfolio = v
	case FieldTwitter:
		out.Contact.Twitter = v
	default:
		return d, fmt.Errorf("unknown identity field %d", f)
	}
	return out, nil
}

func SetSummary(d Draft, v string) Draft {
	out := d.Clone()
	out.Summary = v
	return out
}

// SetPreference sets one of the optional job preference fields.
func SetPreference(d Draft, f PreferenceField, v string) (Draft, error) {
	out := d.Clone()
	p := &out.Preferences
	switch f {
	case PrefTotalYearsExperience:
		p.TotalYearsExperience = v
	case PrefNoticePeriod:
		p.NoticePeriod = v
	case PrefSalaryCurrency:
		p.SalaryCurrency = v
	case PrefSalaryMin:
		p.SalaryMin = v
	case PrefSalaryMax:
		p.SalaryMax = v
	default:
		return d, fmt.Errorf("unknown preference field %d", f)
	}
	return out, nil
}

// SetLanguageLevel records the proficiency of the i-th language tag. A
// blank level clears it.
func SetLanguageLevel(d Draft, i int, level string) (Draft, error) {
	if i < 0 || i >= len(d.Languages) {
		return d, outOfRange("languages", i, len(d.Languages))
	}
	out := d.Clone()
	lang := out.Languages[i]
	level = strings.TrimSpace(level)
	if level == "" {
		delete(out.LanguageLevels, lang)
		return out, nil
	}
	if out.LanguageLevels == nil {
		out.LanguageLevels = map[string]string{}
	}
	out.LanguageLevels[lang] = level
	return out, nil
}

func SetEducation(d Draft, i int, f EducationField, v string) (Draft, error) {
	if i < 0 || i >= len(d.Education) {
		return d, outOfRange("education", i, len(d.Education))
	}
	out := d.Clone()
	e := &out.Education[i]
	switch f {
	case EducationYears:
		e.Years = v
	case EducationInstitution:
		e.Institution = v
	case EducationDegree:
		e.Degree = v
	case EducationPercentage:
		e.Percentage = v
	default:
		return d, fmt.Errorf("unknown education field %d", f)
	}
	return out, nil
}

func SetWork(d Draft, i int, f WorkField, v string) (Draft, error) {
	if i < 0 || i >= len(d.WorkExperience) {
		return d, outOfRange("workExperience", i, len(d.WorkExperience))
	}
	out := d.Clone()
	w := &out.WorkExperience[i]
	switch f {
	case WorkCompany:
		w.Company = v
	case WorkDuration:
		w.Duration = v
	case WorkRole:
		w.Role = v
	default:
		return d, fmt.Errorf("unknown work field %d", f)
	}
	return out, nil
}

func SetResponsibility(d Draft, i, j int, v string) (Draft, error) {
	if i < 0 || i >= len(d.WorkExperience) {
		return d, outOfRange("workExperience", i, len(d.WorkExperience))
	}
	if n := len(d.WorkExperience[i].Responsibilities); j < 0 || j >= n {
		return d, outOfRange(fmt.Sprintf("workExperience[%d].responsibilities", i), j, n)
	}
	out := d.Clone()
	out.WorkExperience[i].Responsibilities[j] = v
	return out, nil
}

func SetProject(d Draft, i int, f ProjectField, v string) (Draft, error) {
	if i < 0 || i >= len(d.Projects) {
		return d, outOfRange("projects", i, len(d.Projects))
	}
	out := d.Clone()
	p := &out.Projects[i]
	switch f {
	case ProjectTitle:
		p.Title = v
	case ProjectRole:
		p.Role = v
	case ProjectYear:
		p.Year = v
	case ProjectDescription:
		p.Description = v
	default:
		return d, fmt.Errorf("unknown project field %d", f)
	}
	return out, nil
}

// AddListItem appends a blank record to the named list.
func AddListItem(d Draft, l ListName) (Draft, error) {
	out := d.Clone()
	switch l {
	case ListEducation:
		out.Education = append(out.Education, Education{})
	case ListWorkExperience:
		out.WorkExperience = append(out.WorkExperience, newWork())
	case ListProjects:
		out.Projects = append(out.Projects, Project{})
	default:
		return d, fmt.Errorf("unknown list %d", l)
	}
	return out, nil
}

// RemoveListItem drops entry i from the named list, keeping the order of
// the remaining entries.
func RemoveListItem(d Draft, l ListName, i int) (Draft, error) {
	out := d.Clone()
	switch l {
	case ListEducation:
		if i < 0 || i >= len(out.Education) {
			return d, outOfRange("education", i, len(out.Education))
		}
		out.Education = append(out.Education[:i], out.Education[i+1:]...)
	case ListWorkExperience:
		if i < 0 || i >= len(out.WorkExperience) {
			return d, outOfRange("workExperience", i, len(out.WorkExperience))
		}
		out.WorkExperience = append(out.WorkExperience[:i], out.WorkExperience[i+1:]...)
	case ListProjects:
		if i < 0 || i >= len(out.Projects) {
			return d, outOfRange("projects", i, len(out.Projects))
		}
		out.Projects = append(out.Projects[:i], out.Projects[i+1:]...)
	default:
		return d, fmt.Errorf("unknown list %d", l)
	}
	return out, nil
}

func AddResponsibility(d Draft, i int) (Draft, error) {
	if i < 0 || i >= len(d.WorkExperience) {
		return d, outOfRange("workExperience", i, len(d.WorkExperience))
	}
	out := d.Clone()
	out.WorkExperience[i].Responsibilities = append(out.WorkExperience[i].Responsibilities, "")
	return out, nil
}

func RemoveResponsibility(d Draft, i, j int) (Draft, error) {
	if i < 0 || i >= len(d.WorkExperience) {
		return d, outOfRange("workExperience", i, len(d.WorkExperience))
	}
	if n := len(d.WorkExperience[i].Responsibilities); j < 0 || j >= n {
		return d, outOfRange(fmt.Sprintf("workExperience[%d].responsibilities", i), j, n)
	}
	out := d.Clone()
	r := out.WorkExperience[i].Responsibilities
	out.WorkExperience[i].Responsibilities = append(r[:j], r[j+1:]...)
	return out, nil
}

// AddTag appends a trimmed tag. Blank values are ignored; duplicates are kept.
func AddTag(d Draft, s TagSet, v string) (Draft, error) {
	v = strings.TrimSpace(v)
	switch s {
	case TagSkills, TagLanguages, TagWorkTypes:
	default:
		return d, fmt.Errorf("unknown tag set %d", s)
	}
	if v == "" {
		return d, nil
	}
	out := d.Clone()
	switch s {
	case TagSkills:
		out.Skills = append(out.Skills, v)
	case TagLanguages:
		out.Languages = append(out.Languages, v)
	case TagWorkTypes:
		out.Preferences.WorkTypes = append(out.Preferences.WorkTypes, v)
	}
	return out, nil
}

func RemoveTag(d Draft, s TagSet, i int) (Draft, error) {
	out := d.Clone()
	switch s {
	case TagSkills:
		if i < 0 || i >= len(out.Skills) {
			return d, outOfRange("skills", i, len(out.Skills))
		}
		out.Skills = append(out.Skills[:i], out.Skills[i+1:]...)
	case TagLanguages:
		if i < 0 || i >= len(out.Languages) {
			return d, outOfRange("languages", i, len(out.Languages))
		}
		lang := out.Languages[i]
		out.Languages = append(out.Languages[:i], out.Languages[i+1:]...)
		// a duplicate tag keeps the level
		if !slices.Contains(out.Languages, lang) {
			delete(out.LanguageLevels, lang)
		}
	case TagWorkTypes:
		w := out.Preferences.WorkTypes
		if i < 0 || i >= len(w) {
			return d, outOfRange("preferences.work_types", i, len(w))
		}
		out.Preferences.WorkTypes = append(w[:i], w[i+1:]...)
	default:
		return d, fmt.Errorf("unknown tag set %d", s)
	}
	return out, nil
}

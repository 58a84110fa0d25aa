package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type pathSeg struct {
	name  string
	index int // -1 when the segment carries no [n]
}

func parsePath(path string) ([]pathSeg, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty field path")
	}
	parts := strings.Split(path, ".")
	segs := make([]pathSeg, 0, len(parts))
	for _, p := range parts {
		seg := pathSeg{name: p, index: -1}
		if open := strings.IndexByte(p, '['); open >= 0 {
			if !strings.HasSuffix(p, "]") {
				return nil, fmt.Errorf("malformed segment %q in %q", p, path)
			}
			n, err := strconv.Atoi(p[open+1 : len(p)-1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("bad index in %q", path)
			}
			seg.name, seg.index = p[:open], n
		}
		if seg.name == "" {
			return nil, fmt.Errorf("malformed field path %q", path)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

var identityPaths = map[string]IdentityField{
	"title":                      FieldTitle,
	"full_name":                  FieldFullName,
	"image_url":                  FieldImageURL,
	"contact.phone":              FieldPhone,
	"contact.phone_country_code": FieldPhoneCountryCode,
	"contact.email":              FieldEmail,
	"contact.location":           FieldLocation,
	"contact.pincode":            FieldPostalCode,
	"contact.linkedin":           FieldLinkedIn,
	"contact.github":             FieldGitHub,
	"contact.portfolio":          FieldPortfolio,
	"contact.twitter":            FieldTwitter,
}

var preferencePaths = map[string]PreferenceField{
	"preferences.total_years_experience": PrefTotalYearsExperience,
	"preferences.notice_period":          PrefNoticePeriod,
	"preferences.salary_currency":        PrefSalaryCurrency,
	"preferences.salary_min":             PrefSalaryMin,
	"preferences.salary_max":             PrefSalaryMax,
}

var (
	educationFields = map[string]EducationField{
		"years": EducationYears, "institution": EducationInstitution,
		"degree": EducationDegree, "percentage": EducationPercentage,
	}
	workFields = map[string]WorkField{
		"company": WorkCompany, "duration": WorkDuration, "role": WorkRole,
	}
	projectFields = map[string]ProjectField{
		"title": ProjectTitle, "role": ProjectRole,
		"year": ProjectYear, "description": ProjectDescription,
	}
)

// SetField resolves a field path such as "contact.phone",
// "education[1].degree", "languages[0].proficiency" or
// "workExperience[0].responsibilities[2]" and
// applies the matching typed setter. The keys are the same ones Validate
// reports errors under.
func SetField(d Draft, path, value string) (Draft, error) {
	if f, ok := identityPaths[path]; ok {
		return SetIdentity(d, f, value)
	}
	if f, ok := preferencePaths[path]; ok {
		return SetPreference(d, f, value)
	}
	if path == "profile" {
		return SetSummary(d, value), nil
	}

	segs, err := parsePath(path)
	if err != nil {
		return d, err
	}
	head := segs[0]
	if head.index < 0 || len(segs) != 2 {
		return d, fmt.Errorf("unknown field path %q", path)
	}
	leaf := segs[1]

	switch head.name {
	case "education":
		if f, ok := educationFields[leaf.name]; ok && leaf.index < 0 {
			return SetEducation(d, head.index, f, value)
		}
	case "workExperience":
		if leaf.name == "responsibilities" && leaf.index >= 0 {
			return SetResponsibility(d, head.index, leaf.index, value)
		}
		if f, ok := workFields[leaf.name]; ok && leaf.index < 0 {
			return SetWork(d, head.index, f, value)
		}
	case "projects":
		if f, ok := projectFields[leaf.name]; ok && leaf.index < 0 {
			return SetProject(d, head.index, f, value)
		}
	case "languages":
		if leaf.name == "proficiency" && leaf.index < 0 {
			return SetLanguageLevel(d, head.index, value)
		}
	}
	return d, fmt.Errorf("unknown field path %q", path)
}

// Mutation is the wire form of a single draft transform.
type Mutation struct {
	Op    string `json:"op" binding:"required,oneof=set add remove add_tag remove_tag"`
	Path  string `json:"path" binding:"required"`
	Value string `json:"value"`
	Index *int   `json:"index"`
}

// errNoIndex is returned by the remove ops when the mutation carries no index.
var errNoIndex = errors.New("index is required")

func (m Mutation) index() (int, error) {
	if m.Index == nil {
		return 0, fmt.Errorf("%s %q: %w", m.Op, m.Path, errNoIndex)
	}
	return *m.Index, nil
}

// Apply runs m against d.
//
//	set         path=<field path>  value
//	add         path=education|workExperience|projects|workExperience[i].responsibilities
//	remove      same paths as add, index
//	add_tag     path=skills|languages|preferences.work_types  value
//	remove_tag  path=skills|languages|preferences.work_types  index
func (m Mutation) Apply(d Draft) (Draft, error) {
	switch m.Op {
	case "set":
		return SetField(d, m.Path, m.Value)
	case "add", "remove":
		return m.applyList(d)
	case "add_tag", "remove_tag":
		var set TagSet
		switch m.Path {
		case "skills":
			set = TagSkills
		case "languages":
			set = TagLanguages
		case "preferences.work_types":
			set = TagWorkTypes
		default:
			return d, fmt.Errorf("unknown tag set %q", m.Path)
		}
		if m.Op == "add_tag" {
			return AddTag(d, set, m.Value)
		}
		i, err := m.index()
		if err != nil {
			return d, err
		}
		return RemoveTag(d, set, i)
	default:
		return d, fmt.Errorf("unknown op %q", m.Op)
	}
}

var listPaths = map[string]ListName{
	"education":      ListEducation,
	"workExperience": ListWorkExperience,
	"projects":       ListProjects,
}

func (m Mutation) applyList(d Draft) (Draft, error) {
	if l, ok := listPaths[m.Path]; ok {
		if m.Op == "add" {
			return AddListItem(d, l)
		}
		i, err := m.index()
		if err != nil {
			return d, err
		}
		return RemoveListItem(d, l, i)
	}

	segs, err := parsePath(m.Path)
	if err != nil {
		return d, err
	}
	if len(segs) == 2 && segs[0].name == "workExperience" && segs[0].index >= 0 &&
		segs[1].name == "responsibilities" && segs[1].index < 0 {
		if m.Op == "add" {
			return AddResponsibility(d, segs[0].index)
		}
		i, err := m.index()
		if err != nil {
			return d, err
		}
		return RemoveResponsibility(d, segs[0].index, i)
	}
	return d, fmt.Errorf("unknown list %q", m.Path)
}

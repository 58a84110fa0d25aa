package wizard

import (
	"fmt"
	"regexp"
	"strings"
)

// Section is one step of the wizard. Sections are visited in order.
type Section int

const (
	SectionIdentity Section = iota
	SectionEducation
	SectionSkills
	SectionSummary
	SectionExperience

	NumSections = int(SectionExperience) + 1
)

// MinSummaryLength is the shortest accepted professional summary, in characters.
const MinSummaryLength = 10

var sectionLabels = [NumSections]string{
	"Basic Details",
	"Education",
	"Skills",
	"Profile",
	"Experience",
}

func (s Section) String() string {
	if s < 0 || int(s) >= NumSections {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return sectionLabels[s]
}

func (s Section) Valid() bool { return s >= 0 && int(s) < NumSections }

// Errors maps a field key (e.g. "contact.email", "education[1].degree")
// to a message. An empty map means the section is complete.
type Errors map[string]string

var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Validate checks the fields owned by one section.
func Validate(s Section, d Draft) Errors {
	errs := Errors{}

	switch s {
	case SectionIdentity:
		if blank(d.Title) {
			errs["title"] = "Professional title is required"
		}
		if blank(d.Contact.Phone) {
			errs["contact.phone"] = "Phone number is required"
		}
		switch {
		case blank(d.Contact.Email):
			errs["contact.email"] = "Email is required"
		case !emailShape.MatchString(strings.TrimSpace(d.Contact.Email)):
			errs["contact.email"] = "Enter a valid email address"
		}
		if blank(d.Contact.Location) {
			errs["contact.location"] = "Location is required"
		}
		if blank(d.Contact.PostalCode) {
			errs["contact.pincode"] = "Pincode is required"
		}

	case SectionEducation:
		if len(d.Education) == 0 {
			errs["education"] = "At least one education entry is required"
			break
		}
		for i, e := range d.Education {
			if blank(e.Years) {
				errs[fmt.Sprintf("education[%d].years", i)] = "Years required"
			}
			if blank(e.Institution) {
				errs[fmt.Sprintf("education[%d].institution", i)] = "Institution required"
			}
			if blank(e.Degree) {
				errs[fmt.Sprintf("education[%d].degree", i)] = "Degree required"
			}
		}

	case SectionSkills:
		if len(d.Skills) == 0 {
			errs["skills"] = "At least one skill is required"
		}
		if len(d.Languages) == 0 {
			errs["languages"] = "At least one language is required"
		}

	case SectionSummary:
		summary := strings.TrimSpace(d.Summary)
		switch {
		case summary == "":
			errs["profile"] = "Professional summary is required"
		case len([]rune(summary)) < MinSummaryLength:
			errs["profile"] = fmt.Sprintf("Summary must be at least %d characters", MinSummaryLength)
		}

	case SectionExperience:
		// optional
	}

	return errs
}

// ValidateAll runs every section and merges the results.
func ValidateAll(d Draft) Errors {
	all := Errors{}
	for s := Section(0); s.Valid(); s++ {
		for k, v := range Validate(s, d) {
			all[k] = v
		}
	}
	return all
}

// FirstInvalid returns the first section with errors, or false when the
// whole draft is complete.
func FirstInvalid(d Draft) (Section, bool) {
	for s := Section(0); s.Valid(); s++ {
		if len(Validate(s, d)) > 0 {
			return s, true
		}
	}
	return 0, false
}

package profile

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Load reads a candidate profile from a JSON file.
func Load(path string) (prof CandidateProfile, err error) {
	// Read file
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read profile file: %s", path)
		return prof, err
	}

	// Parse JSON
	err = json.Unmarshal(fileData, &prof)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse profile JSON: %s", path)
		return prof, err
	}

	// Validate data
	err = prof.Validate()
	if err != nil {
		err = errors.Wrap(err, "profile validation failed")
		return prof, err
	}

	return prof, err
}

// Save writes a candidate profile to a JSON file.
func Save(prof CandidateProfile, path string) (err error) {
	var data []byte
	data, err = json.MarshalIndent(prof, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal profile")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write profile file: %s", path)
		return err
	}

	return err
}

// Validate checks that the profile is well-formed.
func (p *CandidateProfile) Validate() (err error) {
	if p.PersonalInfo.Name == "" {
		err = errors.New("personal_info.name is required")
		return err
	}

	// Validate each work experience entry has required fields
	for i, exp := range p.WorkExperience {
		if exp.Company == "" {
			err = errors.Errorf("work experience at index %d missing company", i)
			return err
		}
		if exp.Role == "" {
			err = errors.Errorf("work experience %s missing role", exp.Company)
			return err
		}
	}

	for i, edu := range p.Education {
		if edu.Institution == "" {
			err = errors.Errorf("education at index %d missing institution", i)
			return err
		}
	}

	return err
}

// NonEmptySections returns the top-level section keys that carry real data,
// preserving schema order. The enhance stage must not emit any key outside
// this set.
func (p *CandidateProfile) NonEmptySections() (keys []string) {
	keys = make([]string, 0, len(SectionKeys))
	for _, key := range SectionKeys {
		if p.sectionPopulated(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// sectionPopulated reports whether a section holds data worth rendering.
func (p *CandidateProfile) sectionPopulated(key string) (populated bool) {
	switch key {
	case "personal_info":
		populated = p.PersonalInfo != PersonalInfo{}
	case "education":
		populated = len(p.Education) > 0
	case "work_experience":
		populated = len(p.WorkExperience) > 0
	case "projects":
		populated = len(p.Projects) > 0
	case "skills":
		populated = p.Skills != nil && (len(p.Skills.Technical) > 0 || len(p.Skills.Tools) > 0 || len(p.Skills.SoftSkills) > 0)
	case "publications":
		populated = len(p.Publications) > 0
	case "certifications":
		populated = len(p.Certifications) > 0
	case "application_history":
		populated = len(p.ApplicationHistory) > 0
	}
	return populated
}

// SafeName returns the candidate name reduced to a filesystem-safe token
// suitable for artifact job names.
func (p *CandidateProfile) SafeName() (name string) {
	name = p.PersonalInfo.Name
	if name == "" {
		name = "Candidate"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	name = b.String()
	if len(name) > 30 {
		name = name[:30]
	}
	if name == "" {
		name = "Candidate"
	}

	return name
}

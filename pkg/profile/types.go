package profile

// CandidateProfile represents the complete structured candidate record the
// interview converges toward. List fields are ordered by recency/relevance
// as supplied by the extractor; nothing here reorders them.
type CandidateProfile struct {
	PersonalInfo       PersonalInfo         `json:"personal_info"`
	Education          []Education          `json:"education,omitempty"`
	WorkExperience     []WorkExperience     `json:"work_experience,omitempty"`
	Projects           []Project            `json:"projects,omitempty"`
	Skills             *Skills              `json:"skills,omitempty"`
	Publications       []Publication        `json:"publications,omitempty"`
	Certifications     []Certification      `json:"certifications,omitempty"`
	ApplicationHistory []ApplicationHistory `json:"application_history,omitempty"`
}

// PersonalInfo represents name, contact details and links.
type PersonalInfo struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	Institution  string   `json:"institution"`
	Location     string   `json:"location,omitempty"`
	Degree       string   `json:"degree"`
	FieldOfStudy string   `json:"field_of_study"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	GPA          string   `json:"gpa,omitempty"`
	Coursework   []string `json:"coursework,omitempty"`
}

// WorkExperience represents a single role, optionally carrying free-text
// context and metric strings gathered during the interview.
type WorkExperience struct {
	Company           string   `json:"company"`
	Location          string   `json:"location,omitempty"`
	Role              string   `json:"role"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	Bullets           []string `json:"bullets,omitempty"`
	SkillsUsed        []string `json:"skills_used,omitempty"`
	Metrics           []string `json:"metrics,omitempty"`
	ExperienceContext string   `json:"experience_context,omitempty"`
}

// Project represents a personal or open source project.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Publication represents a published article or paper.
type Publication struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher,omitempty"`
	Date      string `json:"date,omitempty"`
	Link      string `json:"link,omitempty"`
}

// Certification represents a professional certification.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date,omitempty"`
}

// ApplicationHistory represents a past job application record.
type ApplicationHistory struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	DateApplied string `json:"date_applied,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Skills represents organized skill categories.
type Skills struct {
	Technical  []string `json:"technical,omitempty"`
	Tools      []string `json:"tools,omitempty"`
	SoftSkills []string `json:"soft_skills,omitempty"`
}

// SectionKeys lists the top-level JSON keys a CandidateProfile can carry,
// in the order sections appear in a rendered document.
//
//nolint:gochecknoglobals // Fixed schema vocabulary
var SectionKeys = []string{
	"personal_info",
	"education",
	"work_experience",
	"projects",
	"skills",
	"publications",
	"certifications",
	"application_history",
}

package models

// ParsedResume is the structured record extracted from a single resume.
// Optional scalar fields are omitted from JSON when absent; sequence fields
// always serialize as arrays, never null.
type ParsedResume struct {
	FullName          string           `json:"full_name"`
	Email             string           `json:"email,omitempty"`
	Phone             string           `json:"phone,omitempty"`
	Location          string           `json:"location,omitempty"`
	LinkedinURL       string           `json:"linkedin_url,omitempty"`
	GithubURL         string           `json:"github_url,omitempty"`
	PortfolioURL      string           `json:"portfolio_url,omitempty"`
	Summary           string           `json:"summary,omitempty"`
	CurrentJobTitle   string           `json:"current_job_title,omitempty"`
	YearsOfExperience *int             `json:"years_of_experience,omitempty"`
	WorkExperience    []WorkExperience `json:"work_experience"`
	Education         []Education      `json:"education"`
	Skills            []Skill          `json:"skills"`
	Certifications    []Certification  `json:"certifications"`
	Projects          []Project        `json:"projects"`
	Languages         []string         `json:"languages"`
}

// WorkExperience is one role held by the candidate, kept in the order the
// model emitted it.
type WorkExperience struct {
	JobTitle         string   `json:"job_title"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"` // "Present" permitted
	Duration         string   `json:"duration,omitempty"`
	Responsibilities []string `json:"responsibilities"`
}

// Skill is a single named skill. Category and proficiency are advisory
// categoricals, not strict enumerations.
type Skill struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Education is one degree or program. GraduationYear stays a free-form
// string so values like "Expected 2024" survive validation.
type Education struct {
	Degree         string   `json:"degree"`
	Institution    string   `json:"institution"`
	FieldOfStudy   string   `json:"field_of_study,omitempty"`
	GraduationYear string   `json:"graduation_year,omitempty"`
	GPA            *float64 `json:"gpa,omitempty"`
	Location       string   `json:"location,omitempty"`
}

// Certification is one professional certification held by the candidate.
type Certification struct {
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuing_organization"`
	IssueDate           string `json:"issue_date,omitempty"`
	ExpiryDate          string `json:"expiry_date,omitempty"`
	CredentialID        string `json:"credential_id,omitempty"`
}

// Project is a personal or professional project listed on the resume.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
	Date         string   `json:"date,omitempty"`
}

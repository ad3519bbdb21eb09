// Package schema holds the declarative definition of the extraction target:
// every field of the parsed resume, its type, and whether it is required.
// The same definition drives the provider's structured-output schema and the
// result validator, so the two can never drift apart.
package schema

// ToolName is the tool the model is forced to call when the provider
// supports tool-constrained output.
const ToolName = "record_resume"

// Kind is the wire type of a field.
type Kind int

const (
	String Kind = iota
	Integer
	Number
	StringArray
	ObjectArray
)

// Field describes one field of an object: its JSON name, type, whether the
// model must supply it, and an optional numeric range constraint.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Doc      string
	Min      *float64
	Max      *float64
	Elem     *Object // element definition when Kind is ObjectArray
}

// Object describes a JSON object by its ordered field list. Field order is
// the order violations are reported in, so it is part of the contract.
type Object struct {
	Name   string
	Doc    string
	Fields []Field
}

func bound(v float64) *float64 { return &v }

var workExperience = &Object{
	Name: "work_experience",
	Doc:  "One role held by the candidate.",
	Fields: []Field{
		{Name: "job_title", Kind: String, Required: true, Doc: "Job title as written on the resume."},
		{Name: "company", Kind: String, Required: true, Doc: "Employer name."},
		{Name: "location", Kind: String, Doc: "Role location, if stated."},
		{Name: "start_date", Kind: String, Doc: "Start date as written, free-form."},
		{Name: "end_date", Kind: String, Doc: "End date as written; 'Present' for a current role."},
		{Name: "duration", Kind: String, Doc: "Duration as written, if stated."},
		{Name: "responsibilities", Kind: StringArray, Doc: "3-5 responsibility bullets for the role."},
	},
}

var education = &Object{
	Name: "education",
	Doc:  "One degree or program.",
	Fields: []Field{
		{Name: "degree", Kind: String, Required: true, Doc: "Degree or program name."},
		{Name: "institution", Kind: String, Required: true, Doc: "School or university name."},
		{Name: "field_of_study", Kind: String, Doc: "Field of study, if stated."},
		{Name: "graduation_year", Kind: String, Doc: "Graduation year as written, e.g. '2021' or 'Expected 2024'."},
		{Name: "gpa", Kind: Number, Min: bound(0), Max: bound(4), Doc: "GPA on a 4.0 scale, if stated."},
		{Name: "location", Kind: String, Doc: "Institution location, if stated."},
	},
}

var skill = &Object{
	Name: "skills",
	Doc:  "One named skill.",
	Fields: []Field{
		{Name: "name", Kind: String, Required: true, Doc: "Skill name, normalized where possible."},
		{Name: "category", Kind: String, Doc: "Advisory category, e.g. technical, soft, language, tool, framework."},
		{Name: "proficiency", Kind: String, Doc: "Advisory level, e.g. Beginner, Intermediate, Advanced, Expert."},
	},
}

var certification = &Object{
	Name: "certifications",
	Doc:  "One professional certification.",
	Fields: []Field{
		{Name: "name", Kind: String, Required: true, Doc: "Certification name."},
		{Name: "issuing_organization", Kind: String, Required: true, Doc: "Organization that issued the certification."},
		{Name: "issue_date", Kind: String, Doc: "Issue date as written, if stated."},
		{Name: "expiry_date", Kind: String, Doc: "Expiry date as written, if stated."},
		{Name: "credential_id", Kind: String, Doc: "Credential identifier, if stated."},
	},
}

var project = &Object{
	Name: "projects",
	Doc:  "One personal or professional project.",
	Fields: []Field{
		{Name: "title", Kind: String, Required: true, Doc: "Project title."},
		{Name: "description", Kind: String, Required: true, Doc: "Short project description."},
		{Name: "technologies", Kind: StringArray, Doc: "Technologies used in the project."},
		{Name: "url", Kind: String, Doc: "Project URL, if stated."},
		{Name: "date", Kind: String, Doc: "Project date or date range, if stated."},
	},
}

var resume = &Object{
	Name: "resume",
	Doc:  "Structured candidate data extracted from one resume.",
	Fields: []Field{
		{Name: "full_name", Kind: String, Required: true, Doc: "Candidate's full name."},
		{Name: "email", Kind: String, Doc: "Email address, if stated."},
		{Name: "phone", Kind: String, Doc: "Phone number, if stated."},
		{Name: "location", Kind: String, Doc: "Candidate location, if stated."},
		{Name: "linkedin_url", Kind: String, Doc: "LinkedIn profile URL, if stated."},
		{Name: "github_url", Kind: String, Doc: "GitHub profile URL, if stated."},
		{Name: "portfolio_url", Kind: String, Doc: "Portfolio or personal site URL, if stated."},
		{Name: "summary", Kind: String, Doc: "Professional summary, if the resume has one."},
		{Name: "current_job_title", Kind: String, Doc: "Most recent job title, if stated."},
		{Name: "years_of_experience", Kind: Integer, Min: bound(0), Max: bound(50), Doc: "Total years of professional experience, if stated."},
		{Name: "work_experience", Kind: ObjectArray, Elem: workExperience, Doc: "Roles in the order they appear on the resume."},
		{Name: "education", Kind: ObjectArray, Elem: education, Doc: "Education entries."},
		{Name: "skills", Kind: ObjectArray, Elem: skill, Doc: "Skills listed on the resume."},
		{Name: "certifications", Kind: ObjectArray, Elem: certification, Doc: "Certifications listed on the resume."},
		{Name: "projects", Kind: ObjectArray, Elem: project, Doc: "Projects listed on the resume."},
		{Name: "languages", Kind: StringArray, Doc: "Spoken languages, if stated."},
	},
}

// Resume returns the registered definition of the parsed-resume record.
func Resume() *Object { return resume }

// JSONSchema renders the object as a JSON Schema document, the form the
// Bedrock Converse tool specification consumes.
func (o *Object) JSONSchema() map[string]any {
	properties := make(map[string]any, len(o.Fields))
	var required []string
	for _, f := range o.Fields {
		properties[f.Name] = f.jsonSchema()
		if f.Required {
			required = append(required, f.Name)
		}
	}
	doc := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if o.Doc != "" {
		doc["description"] = o.Doc
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

func (f Field) jsonSchema() map[string]any {
	var doc map[string]any
	switch f.Kind {
	case String:
		doc = map[string]any{"type": "string"}
	case Integer:
		doc = map[string]any{"type": "integer"}
	case Number:
		doc = map[string]any{"type": "number"}
	case StringArray:
		doc = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	case ObjectArray:
		doc = map[string]any{"type": "array", "items": f.Elem.JSONSchema()}
	}
	if f.Doc != "" {
		doc["description"] = f.Doc
	}
	if f.Min != nil {
		doc["minimum"] = *f.Min
	}
	if f.Max != nil {
		doc["maximum"] = *f.Max
	}
	return doc
}

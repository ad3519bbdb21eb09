// Package prompt composes the provider request for resume extraction.
package prompt

import "strings"

// SystemInstruction is the fixed system message sent with every extraction
// request. The "never fabricate" rule is load-bearing: without it the model
// fills gaps with plausible-looking values and the output cannot be trusted.
const SystemInstruction = `You are a resume parsing assistant. Extract structured candidate data from the resume text you are given, using the ` + "`record_resume`" + ` schema exactly as registered.

Rules:
- Be concise and factual.
- Never infer or invent information. If a field is not present in the resume text, leave it out entirely rather than guessing.
- Limit responsibilities to 3-5 bullets per role.
- Normalize skills and job titles where possible.
- Do not add commentary.`

// Request is the payload handed to the extraction client: a fixed system
// instruction plus the resume text as user content.
type Request struct {
	System string
	User   string
}

// Build wraps extracted resume text into a provider request.
func Build(resumeText string) Request {
	var sb strings.Builder
	sb.WriteString("Resume:\n\n")
	sb.WriteString(strings.TrimSpace(resumeText))
	return Request{
		System: SystemInstruction,
		User:   sb.String(),
	}
}

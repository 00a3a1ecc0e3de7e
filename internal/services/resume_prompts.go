package services

import (
	"fmt"
	"strings"

	"github.com/careerforge/backend/internal/models"
)

var resumeTemplates = map[string]bool{
	"modern":   true,
	"classic":  true,
	"minimal":  true,
	"creative": true,
}

func ValidResumeTemplate(t string) bool { return resumeTemplates[t] }

const generateResumePrompt = `You are a professional resume writer.
Write a complete, ready-to-use resume for the candidate below, targeting the role of "%s".
Style: %s.

Candidate profile:
%s

Requirements:
- 800-1200 words of plain text
- Sections: summary, skills, experience, education
- Ground every claim in the profile; do not invent employers or dates
- No markdown, no placeholders like [Your Name] when the profile provides the value

Return only the resume text.`

const scoreResumePrompt = `You are a hiring manager screening resumes for the role of "%s".

Resume:
%s

Rate the resume. Respond with valid JSON only, exactly this shape:
{
  "score": <integer 0-100>,
  "feedback": "<2-3 sentence overall assessment>",
  "suggestions": ["<specific improvement>", "<specific improvement>"]
}

Return ONLY the JSON object.`

func profileSummaryForPrompt(p *models.Profile) string {
	var b strings.Builder
	if p.FullName != "" {
		fmt.Fprintf(&b, "Name: %s\n", p.FullName)
	}
	if p.Headline != "" {
		fmt.Fprintf(&b, "Headline: %s\n", p.Headline)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if len(p.TargetRoles) > 0 {
		fmt.Fprintf(&b, "Target roles: %s\n", strings.Join(p.TargetRoles, ", "))
	}
	if len(p.Locations) > 0 {
		fmt.Fprintf(&b, "Locations: %s\n", strings.Join(p.Locations, ", "))
	}
	if p.CVText != "" {
		fmt.Fprintf(&b, "Current CV:\n%s\n", p.CVText)
	}
	return b.String()
}

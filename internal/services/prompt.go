package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEntityExtractionPrompt creates the prompt for structured resume
// entity extraction.
func (pb *PromptBuilder) BuildEntityExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Extract skills, education, experience, and certifications from the resume below.

RESUME:
%s

Return ONLY a JSON object in exactly this format, no markdown, no explanations:
{
  "skills": ["<skill>", ...],
  "education": ["<education mention>", ...],
  "experience": ["<employer or role mention>", ...],
  "certifications": ["<certification>", ...]
}

Rules:
- Empty lists must be [] and never null
- Do not invent facts that are not in the resume`, resumeText)
}

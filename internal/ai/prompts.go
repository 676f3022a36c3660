package ai

import (
	"fmt"
	"strings"
)

// ============================================================================
// PROMPT BUILDERS
// ============================================================================

// SummarizePrompt asks for a concise summary of the text.
func SummarizePrompt(text string) string {
	return fmt.Sprintf("Please provide a concise summary of the following text:\n\n%s", text)
}

// Rephrase styles.
const (
	StyleFormal   = "formal"
	StyleInformal = "informal"
	StyleConcise  = "concise"
	StyleExtended = "extended"
)

var rephraseInstructions = map[string]string{
	StyleFormal:   "Rewrite the following text in a formal, professional tone:",
	StyleInformal: "Rewrite the following text in a casual, conversational tone:",
	StyleConcise:  "Rewrite the following text to be more concise and to the point:",
	StyleExtended: "Expand and elaborate on the following text with more details and examples:",
}

// RephrasePrompt rewrites text in the given style. Unknown styles fall
// back to formal.
func RephrasePrompt(text, style string) string {
	instruction, ok := rephraseInstructions[style]
	if !ok {
		instruction = rephraseInstructions[StyleFormal]
	}
	return fmt.Sprintf("%s\n\n%s", instruction, text)
}

// TranslatePrompt asks for a translation into the target language.
func TranslatePrompt(text, language string) string {
	return fmt.Sprintf("Translate the following text to %s. Only return the translation:\n\n%s", language, text)
}

// Template types.
const (
	TemplateMeeting  = "meeting"
	TemplateProject  = "project"
	TemplateDaily    = "daily"
	TemplateResearch = "research"
)

var templatePrompts = map[string]string{
	TemplateMeeting: `Create a meeting notes template with the following sections:
- Meeting Details (date, time, attendees)
- Agenda Items
- Discussion Points
- Action Items with assignees and due dates
- Next Steps
- Follow-up Required

Format it in a clean, structured way using markdown.`,
	TemplateProject: `Create a project planning template with these sections:
- Project Overview and Objectives
- Timeline and Milestones
- Team Members and Roles
- Resources Required
- Budget Considerations
- Risk Assessment
- Success Metrics
- Next Actions

Format it in a clean, structured way using markdown.`,
	TemplateDaily: `Create a daily journal template with these sections:
- Date and Weather
- Daily Goals and Priorities
- Accomplishments
- Challenges Faced
- Lessons Learned
- Gratitude Section
- Tomorrow's Focus
- Mood and Energy Level

Format it in a clean, structured way using markdown.`,
	TemplateResearch: `Create a research notes template with these sections:
- Research Topic and Questions
- Sources and References
- Key Findings
- Methodology
- Data Analysis
- Conclusions
- Further Research Needed
- Bibliography

Format it in a clean, structured way using markdown.`,
}

// TemplatePrompt returns the prompt for a note template of the given
// type. Unknown types fall back to the meeting template.
func TemplatePrompt(templateType string) string {
	prompt, ok := templatePrompts[templateType]
	if !ok {
		prompt = templatePrompts[TemplateMeeting]
	}
	return prompt
}

// TagsPrompt asks for 3-5 tags describing the content.
func TagsPrompt(content string) string {
	return fmt.Sprintf("Analyze the following text and generate 3-5 relevant tags that best describe the content. Return only the tags as a comma-separated list, no explanations or extra text:\n\n%s", content)
}

// relatedContentLimit and relatedDigestLimit bound how much note text
// goes into the related-notes prompt.
const (
	relatedContentLimit = 500
	relatedDigestLimit  = 200
)

// RelatedPrompt builds the prompt that asks which notes in the pool are
// most similar to the given content.
func RelatedPrompt(content string, pool []RelatedDoc) string {
	digests := make([]string, 0, len(pool))
	for _, d := range pool {
		title := d.Title
		if title == "" {
			title = "Untitled"
		}
		digests = append(digests, fmt.Sprintf("ID: %s\nTitle: %s\nContent: %s\nTags: %s",
			d.ID, title, truncate(d.Content, relatedDigestLimit), strings.Join(d.Tags, ", ")))
	}

	return fmt.Sprintf(`Given this note content: "%s"

Find the most semantically similar notes from this list. Consider title, content, and tags for similarity.
Return only the note IDs as a comma-separated list (maximum 5 most similar):

%s`, truncate(content, relatedContentLimit), strings.Join(digests, "\n\n"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

package prompt

import "strings"

const (
	rolePlaceholder       = "{role}"
	transcriptPlaceholder = "{transcript}"

	// ScriptDelimiter separates instruction sections from the subject
	// transcript inside a composed prompt.
	ScriptDelimiter = "[TARGET SCRIPT]"
)

// ComposedPrompt is a fully resolved prompt ready for an LLM call.
type ComposedPrompt struct {
	Text         string
	TemplateKind TemplateKind
	TopicKey     string
}

// Compose resolves the role and template for the request and substitutes
// both slots exactly once. Unknown topic and format keys degrade to their
// defaults; the output never contains a residual placeholder. Transcript
// truncation is a caller concern.
func (l *Library) Compose(topicKey string, format FormatKind, transcript string, kind PromptKind) ComposedPrompt {
	topic := l.TopicFor(topicKey)
	tmpl := l.TemplateFor(kind, format)

	text := strings.Replace(tmpl.Body, rolePlaceholder, topic.Role, 1)
	text = strings.Replace(text, transcriptPlaceholder, transcript, 1)

	return ComposedPrompt{
		Text:         text,
		TemplateKind: tmpl.Kind,
		TopicKey:     topic.Key,
	}
}

// InstructionSection strips the script section from a composed prompt so
// callers can display or edit the instructions without the transcript body.
func InstructionSection(promptText string) string {
	if idx := strings.Index(promptText, ScriptDelimiter); idx >= 0 {
		return strings.TrimSpace(promptText[:idx])
	}
	return promptText
}

// Preview returns the overview and detail instruction sections for a topic
// with the role already substituted, for the read-only template endpoint.
func (l *Library) Preview(topicKey string, format FormatKind) (overview, detail string) {
	overview = InstructionSection(l.Compose(topicKey, format, "", KindOverview).Text)
	detail = InstructionSection(l.Compose(topicKey, format, "", KindDetail).Text)
	return overview, detail
}

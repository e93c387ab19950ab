package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// PromptKind selects which summary prompt is being composed.
type PromptKind string

const (
	KindOverview PromptKind = "overview"
	KindDetail   PromptKind = "detail"
)

// FormatKind selects the structural template for detail summaries.
type FormatKind string

const (
	FormatDialogue     FormatKind = "dialogue"
	FormatPresentation FormatKind = "presentation"
)

// NormalizeFormat maps a client-supplied format string onto a known
// FormatKind. Anything unrecognized (including empty) is dialogue; the
// fallback is a documented default, not an error.
func NormalizeFormat(s string) FormatKind {
	if strings.ToLower(strings.TrimSpace(s)) == string(FormatPresentation) {
		return FormatPresentation
	}
	return FormatDialogue
}

// TemplateKind identifies one of the three template bodies.
type TemplateKind string

const (
	TemplateOverview           TemplateKind = "overview"
	TemplateDetailDialogue     TemplateKind = "detail_dialogue"
	TemplateDetailPresentation TemplateKind = "detail_presentation"
)

// DefaultTopic is the fallback role for unknown topic keys.
const DefaultTopic = "general"

// Topic describes a content role injected into prompts.
type Topic struct {
	Key         string `yaml:"key"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	Role        string `yaml:"role"`
}

// Template is one prompt skeleton with {role} and {transcript} slots.
type Template struct {
	Kind TemplateKind
	Body string
}

type promptsFile struct {
	Topics    []Topic           `yaml:"topics"`
	Templates map[string]string `yaml:"templates"`
}

// Library holds the static topic and template registries.
type Library struct {
	topics    []Topic
	byKey     map[string]Topic
	templates map[TemplateKind]string
}

// Load parses the embedded prompt data and validates every template body
// carries both substitution slots.
func Load() (*Library, error) {
	var file promptsFile
	if err := yaml.Unmarshal(promptsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse prompts.yaml: %w", err)
	}

	lib := &Library{
		byKey:     make(map[string]Topic, len(file.Topics)),
		templates: make(map[TemplateKind]string, len(file.Templates)),
	}
	for _, t := range file.Topics {
		lib.topics = append(lib.topics, t)
		lib.byKey[t.Key] = t
	}
	if _, ok := lib.byKey[DefaultTopic]; !ok {
		return nil, fmt.Errorf("prompts.yaml missing default topic %q", DefaultTopic)
	}

	for _, kind := range []TemplateKind{TemplateOverview, TemplateDetailDialogue, TemplateDetailPresentation} {
		body, ok := file.Templates[string(kind)]
		if !ok {
			return nil, fmt.Errorf("prompts.yaml missing template %q", kind)
		}
		if !strings.Contains(body, rolePlaceholder) || !strings.Contains(body, transcriptPlaceholder) {
			return nil, fmt.Errorf("template %q must contain %s and %s slots", kind, rolePlaceholder, transcriptPlaceholder)
		}
		lib.templates[kind] = body
	}
	return lib, nil
}

// Topics returns all topics in registry order.
func (l *Library) Topics() []Topic {
	out := make([]Topic, len(l.topics))
	copy(out, l.topics)
	return out
}

// TopicFor resolves a topic key, falling back to the default topic for
// unknown or empty keys.
func (l *Library) TopicFor(key string) Topic {
	if t, ok := l.byKey[strings.ToLower(strings.TrimSpace(key))]; ok {
		return t
	}
	return l.byKey[DefaultTopic]
}

// RoleFor returns the role text for a topic key.
func (l *Library) RoleFor(key string) string {
	return l.TopicFor(key).Role
}

// TemplateFor selects a template body. The overview template never depends
// on format; detail selects presentation only for FormatPresentation.
func (l *Library) TemplateFor(kind PromptKind, format FormatKind) Template {
	tk := TemplateOverview
	if kind == KindDetail {
		if format == FormatPresentation {
			tk = TemplateDetailPresentation
		} else {
			tk = TemplateDetailDialogue
		}
	}
	return Template{Kind: tk, Body: l.templates[tk]}
}

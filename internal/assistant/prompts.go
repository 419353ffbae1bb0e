package assistant

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

const (
	promptFAQ                = "faq"
	promptSuggestTeamMembers = "suggest_team_members"
	promptSuggestTeams       = "suggest_teams"
	promptModerateTranslate  = "moderate_translate"
)

//go:embed prompts.yaml
var promptsYAML []byte

type promptSpec struct {
	Description string `yaml:"description"`
	Template    string `yaml:"template"`
	Schema      string `yaml:"schema"`
}

type prompt struct {
	tmpl   *template.Template
	schema json.RawMessage
}

type catalog map[string]*prompt

func loadCatalog(data []byte) (catalog, error) {
	var doc struct {
		Prompts map[string]promptSpec `yaml:"prompts"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalog: %w", err)
	}

	funcs := template.FuncMap{"join": strings.Join}
	c := make(catalog, len(doc.Prompts))
	for name, entry := range doc.Prompts {
		tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(entry.Template)
		if err != nil {
			return nil, fmt.Errorf("prompt %s: %w", name, err)
		}
		schema := json.RawMessage(strings.TrimSpace(entry.Schema))
		if !json.Valid(schema) {
			return nil, fmt.Errorf("prompt %s: schema is not valid JSON", name)
		}
		c[name] = &prompt{tmpl: tmpl, schema: schema}
	}
	return c, nil
}

func (c catalog) render(name string, data any) (string, json.RawMessage, error) {
	p, ok := c[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown prompt %q", name)
	}
	var b strings.Builder
	if err := p.tmpl.Execute(&b, data); err != nil {
		return "", nil, fmt.Errorf("failed to render prompt %s: %w", name, err)
	}
	return b.String(), p.schema, nil
}

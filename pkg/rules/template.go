// Explanation rendering with Sprig template functions
package rules

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// RenderContext carries the variables available to explanation templates
type RenderContext struct {
	// Message is the raw failure message being explained
	Message string
	// Target is the script filename that was executed
	Target string
	// Engine is the name of the engine that ran the script
	Engine string
}

// TemplateEngine renders explanation templates with Sprig functions
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a new template engine for rendering explanations
func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{
		funcMap: sprig.TxtFuncMap(),
	}
}

// Render renders a rule's explanation with the run's variables
func (t *TemplateEngine) Render(rule *Rule, rctx RenderContext) (string, error) {
	tmpl, err := template.New("explanation").Funcs(t.funcMap).Parse(rule.Explanation)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	variables := map[string]interface{}{
		"Message": rctx.Message,
		"Target":  rctx.Target,
		"Engine":  rctx.Engine,
		"Rule":    rule.Name,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

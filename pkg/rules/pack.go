package rules

import (
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

// Pack is an ordered list of rules loaded from a YAML file. A pack may
// extend other file packs; parents' rules are consulted before its own.
type Pack struct {
	Name    string   `yaml:"name"`
	Extends []string `yaml:"extends,omitempty"`
	Rules   []Rule   `yaml:"rules"`

	// FilePath is the file the pack was loaded from, set by the loader
	FilePath string `yaml:"-"`
}

// ParsePack parses a rule pack from YAML content
func ParsePack(content []byte, filePath string) (*Pack, error) {
	pack := &Pack{}
	if err := yaml.Unmarshal(content, pack); err != nil {
		return nil, fmt.Errorf("failed to parse rule pack %s: %w", filePath, err)
	}

	pack.FilePath = filePath

	for i := range pack.Rules {
		pack.Rules[i].SetDefaults()
	}

	return pack, nil
}

// Validate checks the pack definition. Explanation templates are parsed here
// so a broken template is rejected at load time rather than mid-run.
func (p *Pack) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: %s", ErrPackNameRequired, p.FilePath)
	}

	if p.Name == BuiltinPackName {
		return fmt.Errorf("%w: %s", ErrReservedPackName, p.Name)
	}

	if len(p.Rules) == 0 && len(p.Extends) == 0 {
		return fmt.Errorf("%w: %s", ErrNoRules, p.Name)
	}

	seen := make(map[string]bool, len(p.Rules))

	for i := range p.Rules {
		rule := &p.Rules[i]

		if rule.Name == "" {
			return fmt.Errorf("%w: pack %s rule %d", ErrRuleNameRequired, p.Name, i)
		}

		if seen[rule.Name] {
			return fmt.Errorf("%w: %s in pack %s", ErrDuplicateRuleName, rule.Name, p.Name)
		}
		seen[rule.Name] = true

		if rule.Pattern == "" {
			return fmt.Errorf("%w: rule %s in pack %s", ErrPatternRequired, rule.Name, p.Name)
		}

		if rule.Match != MatchContains && rule.Match != MatchIContains {
			return fmt.Errorf("%w: %q on rule %s in pack %s", ErrInvalidMatchKind, rule.Match, rule.Name, p.Name)
		}

		if _, err := template.New(rule.Name).Funcs(sprig.TxtFuncMap()).Parse(rule.Explanation); err != nil {
			return fmt.Errorf("%w: rule %s in pack %s: %v", ErrBadExplanation, rule.Name, p.Name, err)
		}
	}

	return nil
}

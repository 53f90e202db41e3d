package rules

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Match is the outcome of classifying a failure message
type Match struct {
	// Rule is the rule that matched
	Rule Rule
	// Pack is the active pack the classification ran under
	Pack string
	// Explanation is the rendered explanation text
	Explanation string
}

// Service loads rule packs and classifies failure messages
type Service struct {
	config *Config
	log    logrus.FieldLogger

	template  *TemplateEngine
	packs     map[string]*Pack
	effective []Rule
}

// NewService creates a new rules service
func NewService(log logrus.FieldLogger, cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		config:   cfg,
		log:      log,
		template: NewTemplateEngine(),
		packs:    make(map[string]*Pack),
	}, nil
}

// Start discovers and loads rule packs and selects the active one
func (s *Service) Start() error {
	if err := s.loadPacks(); err != nil {
		return err
	}

	if err := s.selectActive(); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"packs": len(s.packs),
		"pack":  s.config.Pack,
		"rules": len(s.effective),
	}).Debug("Rules service started")

	return nil
}

func (s *Service) loadPacks() error {
	files, err := DiscoverPacks(s.config.Paths)
	if err != nil {
		return err
	}

	for _, file := range files {
		pack, parseErr := ParsePack(file.Content, file.FilePath)
		if parseErr != nil {
			return parseErr
		}

		if validateErr := pack.Validate(); validateErr != nil {
			return validateErr
		}

		if existing, exists := s.packs[pack.Name]; exists {
			return fmt.Errorf("%w: %s in %s and %s", ErrDuplicatePackName, pack.Name, existing.FilePath, pack.FilePath)
		}

		s.packs[pack.Name] = pack
	}

	return nil
}

// selectActive resolves extends relationships and builds the effective rule
// order for the configured pack: its resolved rules first, then the built-in
// rules. The built-in policy can be extended in front, never replaced.
func (s *Service) selectActive() error {
	resolved, err := ResolveExtends(s.packs)
	if err != nil {
		return err
	}

	if s.config.Pack == BuiltinPackName {
		s.effective = BuiltinRules()

		return nil
	}

	packRules, exists := resolved[s.config.Pack]
	if !exists {
		return fmt.Errorf("%w: %s", ErrPackNotFound, s.config.Pack)
	}

	s.effective = append(packRules, BuiltinRules()...)

	return nil
}

// Classify selects the first rule matching the message and renders its
// explanation. It always produces a match; when no rule applies the
// fallback explanation is used, and a failing template degrades to the raw
// explanation text rather than failing the run.
func (s *Service) Classify(rctx RenderContext) Match {
	for i := range s.effective {
		rule := &s.effective[i]
		if rule.Matches(rctx.Message) {
			return s.newMatch(rule, rctx)
		}
	}

	fallback := FallbackRule()

	return s.newMatch(&fallback, rctx)
}

func (s *Service) newMatch(rule *Rule, rctx RenderContext) Match {
	explanation, err := s.template.Render(rule, rctx)
	if err != nil {
		s.log.WithError(err).WithField("rule", rule.Name).Warn("Failed to render explanation template")

		explanation = rule.Explanation
	}

	return Match{
		Rule:        *rule,
		Pack:        s.config.Pack,
		Explanation: explanation,
	}
}

// EffectiveRules returns the active pack's rules in match order, including
// the final fallback
func (s *Service) EffectiveRules() []Rule {
	out := make([]Rule, 0, len(s.effective)+1)
	out = append(out, s.effective...)
	out = append(out, FallbackRule())

	return out
}

// Packs returns the discovered file packs sorted by name
func (s *Service) Packs() []*Pack {
	out := make([]*Pack, 0, len(s.packs))
	for _, pack := range s.packs {
		out = append(out, pack)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

package rules

// BuiltinPackName identifies the compiled-in rule pack
const BuiltinPackName = "builtin"

// Explanations shown by the built-in rules. The texts are fixed; they carry
// no template actions and render to themselves.
const (
	ExplainUndefinedVariable = "You are using a variable before assigning a value."
	ExplainSyntaxMistake     = "There is a syntax mistake. Check brackets or colons."
	ExplainGeneric           = "An error occurred. Please check your code."
)

// BuiltinRules returns the compiled-in rules in match order. The
// undefined-variable check is case-sensitive and runs first, so a message
// mentioning both an undefined name and a syntax problem selects it.
func BuiltinRules() []Rule {
	return []Rule{
		{
			Name:        "undefined-variable",
			Match:       MatchContains,
			Pattern:     "not defined",
			Explanation: ExplainUndefinedVariable,
		},
		{
			Name:        "syntax-mistake",
			Match:       MatchIContains,
			Pattern:     "syntax",
			Explanation: ExplainSyntaxMistake,
		},
	}
}

// FallbackRule returns the rule applied when nothing else matches. The empty
// pattern matches every message.
func FallbackRule() Rule {
	return Rule{
		Name:        "default",
		Match:       MatchContains,
		Pattern:     "",
		Explanation: ExplainGeneric,
	}
}

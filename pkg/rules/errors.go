package rules

import "errors"

// Rule pack errors
var (
	ErrPackNotFound      = errors.New("rule pack not found")
	ErrPackNameRequired  = errors.New("rule pack name is required")
	ErrReservedPackName  = errors.New("rule pack name is reserved")
	ErrDuplicatePackName = errors.New("duplicate rule pack name")
	ErrUnknownParentPack = errors.New("pack extends unknown pack")
	ErrExtendsCycle      = errors.New("pack extends cycle")
	ErrNoRules           = errors.New("rule pack has no rules and extends nothing")
	ErrRuleNameRequired  = errors.New("rule name is required")
	ErrDuplicateRuleName = errors.New("duplicate rule name in pack")
	ErrPatternRequired   = errors.New("rule pattern is required")
	ErrInvalidMatchKind  = errors.New("invalid match kind")
	ErrBadExplanation    = errors.New("explanation template does not parse")
	ErrValidationFailed  = errors.New("rule pack validation failed")
)

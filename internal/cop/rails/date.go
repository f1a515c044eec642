package rails

import (
	"errors"
	"fmt"
	"slices"

	"copper/internal/ast"
	"copper/internal/cop"
	"copper/internal/diag"
	"copper/internal/pattern"
)

const (
	DateName = "Rails/Date"

	// KeyAcceptedMethods overrides TimeZoneAcceptedMethods.
	KeyAcceptedMethods = "AcceptedMethods"

	msgDay        = "Do not use `Date.%s` without zone. Use `Time.zone.%s` instead."
	msgSend       = "Do not use `%s` on Date objects, because they know nothing about the time zone in use."
	msgDeprecated = "`%s` is deprecated. Use `%s` instead."
)

// Enforced styles of Rails/Date.
const (
	StyleStrict   cop.Style = "strict"
	StyleFlexible cop.Style = "flexible"
)

type dateStyle uint8

const (
	strict dateStyle = iota
	flexible
)

var deprecatedConversions = map[string]string{
	"to_time_in_current_zone": "in_time_zone",
}

var (
	dateConst = pattern.Const("Date")

	// Date.today и т.п. на корневом Date (голом или ::Date)
	dateConstructor = pattern.Call{Receiver: dateConst, Method: pattern.OneOf("today", "yesterday", "tomorrow", "current")}
	zoneStripping   = pattern.Call{Receiver: pattern.Any, Method: pattern.OneOf("to_time", "to_time_in_current_zone")}
)

// Date flags zone-naive Date usage: Date.today and friends, `to_time` on
// date values and the deprecated `to_time_in_current_zone`.
//
// The style is fixed when the cop is built. Strict flags today, yesterday,
// tomorrow and current and every unsafe `to_time`. Flexible flags only
// today and accepts `to_time` followed by a zone-aware method.
type Date struct {
	cop.Base
	style    dateStyle
	badDays  []string
	accepted []string
}

// DateRegistration describes Rails/Date.
var DateRegistration = cop.Registration{
	Name:        DateName,
	Description: "Checks the correct usage of date aware methods, such as Date.today, Date.current etc.",
	Defaults: cop.Config{
		cop.KeyEnabled:         true,
		cop.KeySeverity:        diag.SevConvention.String(),
		cop.KeyEnforcedStyle:   string(StyleFlexible),
		cop.KeySupportedStyles: []any{string(StyleStrict), string(StyleFlexible)},
	},
	New: func(cfg cop.Config) (cop.Cop, error) {
		return NewDate(cfg)
	},
}

// NewDate builds the cop. EnforcedStyle is required; AcceptedMethods
// defaults to TimeZoneAcceptedMethods.
func NewDate(cfg cop.Config) (*Date, error) {
	b, err := cop.NewBase(DateName, cfg, diag.SevConvention)
	if err != nil {
		return nil, err
	}
	s, err := cfg.EnforcedStyle(StyleStrict, StyleFlexible)
	if err != nil {
		return nil, err
	}
	accepted, err := cfg.Strings(KeyAcceptedMethods)
	switch {
	case errors.Is(err, cop.ErrConfigMissing):
		accepted = slices.Clone(TimeZoneAcceptedMethods)
	case err != nil:
		return nil, err
	}

	c := &Date{Base: b, accepted: accepted}
	switch s {
	case StyleStrict:
		c.style = strict
		c.badDays = []string{"today", "yesterday", "tomorrow", "current"}
	case StyleFlexible:
		c.style = flexible
		c.badDays = []string{"today"}
	}
	return c, nil
}

// Style returns the enforced style.
func (c *Date) Style() cop.Style {
	if c.style == flexible {
		return StyleFlexible
	}
	return StyleStrict
}

func (c *Date) Inspect(tree *ast.Tree, r diag.Reporter) {
	for n := range tree.Nodes() {
		switch {
		case dateConstructor.Match(n):
			c.checkDateNode(tree, n, r)
		case zoneStripping.Match(n):
			c.checkConversion(tree, n, r)
		}
	}
}

// checkDateNode reports the first bad day found along the method chain
// that starts at the call on Date.
func (c *Date) checkDateNode(tree *ast.Tree, call *ast.Node, r diag.Reporter) {
	for _, name := range pattern.MethodChain(tree, call) {
		if !slices.Contains(c.badDays, name) {
			continue
		}
		day := name
		if name == "current" {
			day = "today"
		}
		c.AddOffense(r, call.Loc.Selector, fmt.Sprintf(msgDay, name, day)).Emit()
		return
	}
}

func (c *Date) checkConversion(tree *ast.Tree, call *ast.Node, r diag.Reporter) {
	if relevant, ok := deprecatedConversions[call.Name]; ok {
		c.AddOffense(r, call.Loc.Selector, fmt.Sprintf(msgDeprecated, call.Name, relevant)).Emit()
		return
	}
	if c.safeChain(tree, call) || safeToTime(call) {
		return
	}
	c.AddOffense(r, call.Loc.Selector, fmt.Sprintf(msgSend, call.Name)).Emit()
}

// safeChain: in flexible style a zone-aware method later in the chain makes
// the conversion harmless.
func (c *Date) safeChain(tree *ast.Tree, call *ast.Node) bool {
	if c.style != flexible {
		return false
	}
	for _, name := range pattern.MethodChain(tree, call)[1:] {
		if slices.Contains(c.accepted, name) {
			return true
		}
	}
	return false
}

// safeToTime: a string receiver must carry its own zone; any other receiver
// is safe when the zone is passed as the single argument.
func safeToTime(call *ast.Node) bool {
	if call.Receiver.Is(ast.Str) {
		return pattern.HasExplicitZone(call.Receiver.Literal)
	}
	return len(call.Args) == 1
}

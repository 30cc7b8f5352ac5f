// Package autoprops implements spec.md §4.9 "Auto-properties": an ordered
// rule list matched against class/role/title, applied at well-defined
// lifecycle points. It is grounded on funkycode-marwind's config package
// (regexp-based rule matching patterns absent there but its config.Load/
// TOML-decode structure is reused) and on original_source/src/AutoProperties.*
// (_INDEX.md) for the scope-mask and action-payload shape, since marwind
// itself has no equivalent subsystem.
package autoprops

import (
	"regexp"

	"github.com/pekwm/pekwm-sub002/internal/client"
	"github.com/pekwm/pekwm-sub002/internal/geom"
)

// Scope is a bitmask of lifecycle points a rule applies at (spec.md §4.9
// "A scope mask").
type Scope uint16

const (
	ApplyOnStart Scope = 1 << iota
	ApplyOnNew
	ApplyOnReload
	ApplyOnWorkspace
	ApplyOnTransient
	ApplyOnTitle
)

func (s Scope) Has(f Scope) bool { return s&f != 0 }

// Match is the rule's predicate: any combination of class-instance,
// class-name, role and title regexps (spec.md §4.9 "A match predicate").
// A nil pattern is not evaluated (matches unconditionally on that field).
type Match struct {
	Instance *regexp.Regexp
	Class    *regexp.Regexp
	Role     *regexp.Regexp
	Title    *regexp.Regexp
}

// Subject is the minimal client-derived data a Match is evaluated against.
type Subject struct {
	Instance, Class, Role, Title string
}

func (m Match) Matches(s Subject) bool {
	if m.Instance != nil && !m.Instance.MatchString(s.Instance) {
		return false
	}
	if m.Class != nil && !m.Class.MatchString(s.Class) {
		return false
	}
	if m.Role != nil && !m.Role.MatchString(s.Role) {
		return false
	}
	if m.Title != nil && !m.Title.MatchString(s.Title) {
		return false
	}
	return true
}

// GeometrySpec is an optional frame-or-client geometry payload; fields left
// at zero value (Set=false) are not applied.
type GeometrySpec struct {
	Set    bool
	Client bool // true: client geometry; false: frame (outer) geometry
	Geom   geom.Geometry
}

// TriState represents an optional boolean payload field: an autoprop rule
// may be silent on a given bit, in which case the client's current state
// is left untouched.
type TriState uint8

const (
	Unset TriState = iota
	SetTrue
	SetFalse
)

func (t TriState) Apply(cur bool) bool {
	switch t {
	case SetTrue:
		return true
	case SetFalse:
		return false
	default:
		return cur
	}
}

// Action is the rule's action payload (spec.md §4.9 "An action payload").
type Action struct {
	Workspace  *int32
	Sticky     TriState
	Shaded     TriState
	MaxHorz    TriState
	MaxVert    TriState
	Iconified  TriState
	Fullscreen TriState
	Border     TriState
	Titlebar   TriState
	Geometry   GeometrySpec
	Layer      *uint8 // wo.Layer value, boxed to avoid importing wo for a single optional field
	DecorName  string
	Skip       *uint8 // wo.Skip bitmask
	Focusable  TriState
	GroupName  string
	GroupMax   int
	DenyMask   *client.DenyMask
	Opacity    *uint8
	PlaceNew   TriState
}

// Rule pairs a Match with its Action and Scope (spec.md §4.9 "A list of
// rules evaluated in order").
type Rule struct {
	Name   string
	Match  Match
	Scope  Scope
	Action Action
}

// RuleSet is the ordered rule list. The first matching rule within a scope
// wins, matching pekwm's own "first match" autoproperties semantics
// (original_source/src/AutoProperties.cc).
type RuleSet struct {
	Rules []Rule
}

// FindFirst returns the first rule matching s whose Scope includes scope.
func (rs *RuleSet) FindFirst(s Subject, scope Scope) (Rule, bool) {
	for _, r := range rs.Rules {
		if r.Scope.Has(scope) && r.Match.Matches(s) {
			return r, true
		}
	}
	return Rule{}, false
}

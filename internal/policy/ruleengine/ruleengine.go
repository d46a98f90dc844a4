// Package ruleengine defines the rule evaluation capability used by policy
// resolution: rule sets, the facts they act on and the policy handles that
// execute them.
package ruleengine

import (
	"context"
	"errors"
	"fmt"
)

// ErrRuleSetNotFound is returned when no rule set matches a name and version.
var ErrRuleSetNotFound = errors.New("rule set not found")

//go:generate mockgen -source=ruleengine.go -destination=mocks/mocks.go -package=mocks Policy,Engine,RuleStore,Interceptor

// Fact is an object rules read and mutate. Rules address it by FactName.
type Fact interface {
	FactName() string
}

// Assignable facts accept rule actions.
type Assignable interface {
	Assign(path string, value any) error
}

// Interceptor observes rule execution.
type Interceptor interface {
	RuleEvaluated(ruleSet, rule string, matched bool)
	RuleFired(ruleSet, rule string)
	FactAssigned(ruleSet, rule, path string, value any)
}

// Policy is a handle on an executable rule set. Close must be called once
// the handle is no longer needed.
type Policy interface {
	Execute(ctx context.Context, facts []Fact, interceptor Interceptor) error
	Close() error
}

// RuleStore loads rule sets by explicit version. GetRuleSet returns nil and
// no error when the rule set does not exist.
type RuleStore interface {
	GetRuleSet(ctx context.Context, name string, major, minor int) (*RuleSet, error)
}

// Engine opens policies. Policy resolves through the engine's policy cache;
// Tester wraps a rule set loaded elsewhere.
type Engine interface {
	Policy(ctx context.Context, name string, major, minor int) (Policy, error)
	Tester(ctx context.Context, rs *RuleSet) (Policy, error)
}

// RuleSet is a named, versioned list of rules.
type RuleSet struct {
	Name  string `json:"name"`
	Major int    `json:"major"`
	Minor int    `json:"minor"`
	Rules []Rule `json:"rules"`
}

// Rule fires its actions when When evaluates to true. An empty When always
// fires. Higher priorities run first; ties keep definition order.
type Rule struct {
	Name     string   `json:"name"`
	Priority int      `json:"priority,omitempty"`
	When     string   `json:"when,omitempty"`
	Actions  []Action `json:"actions"`
}

// Action assigns the value of an expression to a fact path of the form
// "<Fact>.<path>".
type Action struct {
	Set   string `json:"set"`
	Value string `json:"value"`
}

// ID renders name and version for logs and errors.
func (rs *RuleSet) ID() string {
	return fmt.Sprintf("%s %d.%d", rs.Name, rs.Major, rs.Minor)
}

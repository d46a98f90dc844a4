package exprengine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/expr-lang/expr"

	"esbresolver/internal/policy/ruleengine"
	dErrors "esbresolver/pkg/domain-errors"
)

// policy executes one compiled rule set. Each handle is used by a single
// evaluation and closed afterwards.
type policy struct {
	set    *compiledSet
	closed atomic.Bool
}

func newPolicy(set *compiledSet) *policy {
	return &policy{set: set}
}

// Execute runs every rule once in priority order against facts. Actions
// write through the fact's Assign method.
func (p *policy) Execute(ctx context.Context, facts []ruleengine.Fact, interceptor ruleengine.Interceptor) error {
	if p.closed.Load() {
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("policy %s is closed", p.set.id))
	}

	env := make(map[string]any, len(facts))
	for _, f := range facts {
		if f != nil {
			env[f.FactName()] = f
		}
	}

	for _, rule := range p.set.rules {
		if err := ctx.Err(); err != nil {
			return err
		}
		matched, err := p.evaluate(rule, env)
		if err != nil {
			return err
		}
		if interceptor != nil {
			interceptor.RuleEvaluated(p.set.name, rule.name, matched)
		}
		if !matched {
			continue
		}
		if interceptor != nil {
			interceptor.RuleFired(p.set.name, rule.name)
		}
		for _, action := range rule.actions {
			value, err := p.apply(rule.name, action, env)
			if err != nil {
				return err
			}
			if interceptor != nil {
				interceptor.FactAssigned(p.set.name, rule.name, action.set, value)
			}
		}
	}
	return nil
}

func (p *policy) evaluate(rule compiledRule, env map[string]any) (bool, error) {
	if rule.when == nil {
		return true, nil
	}
	out, err := expr.Run(rule.when, env)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal,
			fmt.Sprintf("policy %s, rule %s: condition failed", p.set.id, rule.name))
	}
	matched, _ := out.(bool)
	return matched, nil
}

func (p *policy) apply(rule string, action compiledAction, env map[string]any) (any, error) {
	target, ok := env[action.fact].(ruleengine.Assignable)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("policy %s, rule %s: fact %q is not available for assignment", p.set.id, rule, action.fact))
	}
	value, err := expr.Run(action.value, env)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal,
			fmt.Sprintf("policy %s, rule %s: %s expression failed", p.set.id, rule, action.set))
	}
	if err := target.Assign(action.path, value); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal,
			fmt.Sprintf("policy %s, rule %s: assign %s", p.set.id, rule, action.set))
	}
	return value, nil
}

// Close releases the handle. Further executions fail.
func (p *policy) Close() error {
	p.closed.Store(true)
	return nil
}

var _ ruleengine.Policy = (*policy)(nil)

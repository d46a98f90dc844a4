package exprengine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"esbresolver/internal/policy/ruleengine"
	dErrors "esbresolver/pkg/domain-errors"
)

type compiledAction struct {
	fact  string
	path  string
	set   string
	value *vm.Program
}

type compiledRule struct {
	name     string
	priority int
	when     *vm.Program
	actions  []compiledAction
}

type compiledSet struct {
	id    string
	name  string
	major int
	minor int
	rules []compiledRule
}

// compile checks every expression of rs and orders rules by priority.
// Facts are not known until execution, so identifiers are resolved at run
// time.
func compile(rs *ruleengine.RuleSet) (*compiledSet, error) {
	if rs == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "rule set is required")
	}
	if strings.TrimSpace(rs.Name) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "rule set name is required")
	}

	set := &compiledSet{
		id:    rs.ID(),
		name:  rs.Name,
		major: rs.Major,
		minor: rs.Minor,
		rules: make([]compiledRule, 0, len(rs.Rules)),
	}
	for i, r := range rs.Rules {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("rule-%d", i+1)
		}
		cr := compiledRule{name: name, priority: r.Priority}
		if strings.TrimSpace(r.When) != "" {
			prog, err := expr.Compile(r.When, expr.AsBool())
			if err != nil {
				return nil, compileError(set.id, name, "condition", err)
			}
			cr.when = prog
		}
		for _, a := range r.Actions {
			fact, path, ok := strings.Cut(a.Set, ".")
			if !ok || fact == "" || path == "" {
				return nil, dErrors.New(dErrors.CodeInvalidInput,
					fmt.Sprintf("rule set %s, rule %s: action target %q must be <Fact>.<path>", set.id, name, a.Set))
			}
			prog, err := expr.Compile(a.Value)
			if err != nil {
				return nil, compileError(set.id, name, a.Set, err)
			}
			cr.actions = append(cr.actions, compiledAction{fact: fact, path: path, set: a.Set, value: prog})
		}
		set.rules = append(set.rules, cr)
	}
	sort.SliceStable(set.rules, func(i, j int) bool {
		return set.rules[i].priority > set.rules[j].priority
	})
	return set, nil
}

func compileError(setID, rule, what string, err error) error {
	return dErrors.Wrap(err, dErrors.CodeInvalidInput,
		fmt.Sprintf("rule set %s, rule %s: invalid %s expression", setID, rule, what))
}

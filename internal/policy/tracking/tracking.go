// Package tracking records rule execution for diagnostics and writes the
// record to per-run trace files.
package tracking

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"esbresolver/internal/policy/ruleengine"
)

// Event kinds.
const (
	KindEvaluated = "evaluated"
	KindFired     = "fired"
	KindAssigned  = "assigned"
)

// Event is one recorded step of rule execution.
type Event struct {
	Time    time.Time
	Kind    string
	RuleSet string
	Rule    string
	Matched bool
	Path    string
	Value   any
}

// Interceptor collects events from a single policy execution.
type Interceptor struct {
	mu     sync.Mutex
	events []Event
	now    func() time.Time
}

// New returns an empty interceptor.
func New() *Interceptor {
	return &Interceptor{now: time.Now}
}

func (i *Interceptor) record(e Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	e.Time = i.now()
	i.events = append(i.events, e)
}

// RuleEvaluated implements ruleengine.Interceptor.
func (i *Interceptor) RuleEvaluated(ruleSet, rule string, matched bool) {
	i.record(Event{Kind: KindEvaluated, RuleSet: ruleSet, Rule: rule, Matched: matched})
}

// RuleFired implements ruleengine.Interceptor.
func (i *Interceptor) RuleFired(ruleSet, rule string) {
	i.record(Event{Kind: KindFired, RuleSet: ruleSet, Rule: rule})
}

// FactAssigned implements ruleengine.Interceptor.
func (i *Interceptor) FactAssigned(ruleSet, rule, path string, value any) {
	i.record(Event{Kind: KindAssigned, RuleSet: ruleSet, Rule: rule, Path: path, Value: value})
}

// Events returns a copy of the recorded events.
func (i *Interceptor) Events() []Event {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]Event(nil), i.events...)
}

// WriteTo renders one line per event.
func (i *Interceptor) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, e := range i.Events() {
		var line string
		switch e.Kind {
		case KindEvaluated:
			line = fmt.Sprintf("%s RULE EVALUATED  %s/%s matched=%t\n", e.Time.Format(time.RFC3339Nano), e.RuleSet, e.Rule, e.Matched)
		case KindFired:
			line = fmt.Sprintf("%s RULE FIRED      %s/%s\n", e.Time.Format(time.RFC3339Nano), e.RuleSet, e.Rule)
		default:
			line = fmt.Sprintf("%s FACT ASSIGNED   %s/%s %s = %v\n", e.Time.Format(time.RFC3339Nano), e.RuleSet, e.Rule, e.Path, e.Value)
		}
		n, err := bw.WriteString(line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// WriteFile writes the trace to <folder>/<policy>_<uuid>.trace and returns
// the path.
func (i *Interceptor) WriteFile(folder, policyName string) (string, error) {
	name := fmt.Sprintf("%s_%s.trace", sanitize(policyName), uuid.NewString())
	path := filepath.Join(folder, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create trace file: %w", err)
	}
	if _, err := i.WriteTo(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write trace file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close trace file: %w", err)
	}
	return path, nil
}

func sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "policy"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}

var _ ruleengine.Interceptor = (*Interceptor)(nil)

package policy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the part of the scenario context the policy steps need.
type TestContext interface {
	POST(path string, body any, headers map[string]string) error
	AdminHeaders() map[string]string
	GetLastResponseBody() []byte
}

// RegisterSteps registers the policy dry-run steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &policySteps{tc: tc}

	ctx.Step(`^I evaluate policy "([^"]*)" version "([^"]*)" for service "([^"]*)"$`, steps.evaluate)
	ctx.Step(`^I evaluate a request without a policy name$`, steps.evaluateWithoutName)
	ctx.Step(`^the interchange field "([^"]*)" should equal "([^"]*)"$`, steps.interchangeFieldShouldEqual)
}

type policySteps struct {
	tc TestContext
}

func (s *policySteps) evaluate(_ context.Context, name, version, service string) error {
	return s.tc.POST("/admin/policies/evaluate", map[string]any{
		"policy_name":       name,
		"version":           version,
		"service_name":      service,
		"message_direction": "MsgIn",
	}, s.tc.AdminHeaders())
}

func (s *policySteps) evaluateWithoutName(context.Context) error {
	return s.tc.POST("/admin/policies/evaluate", map[string]any{"version": "1"}, s.tc.AdminHeaders())
}

func (s *policySteps) interchangeFieldShouldEqual(_ context.Context, field, expected string) error {
	var body struct {
		Interchange map[string]any `json:"interchange"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &body); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if got := fmt.Sprint(body.Interchange[field]); got != expected {
		return fmt.Errorf("expected interchange.%s to equal %q, got %q", field, expected, got)
	}
	return nil
}

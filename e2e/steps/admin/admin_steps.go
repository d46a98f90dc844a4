package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the part of the scenario context the admin steps need.
type TestContext interface {
	GET(path string, headers map[string]string) error
	POST(path string, body any, headers map[string]string) error
	AdminHeaders() map[string]string
	GetLastResponseBody() []byte
}

// RegisterSteps registers the directory administration steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &adminSteps{tc: tc}

	ctx.Step(`^I GET "([^"]*)" as an operator$`, steps.getAsOperator)
	ctx.Step(`^I GET "([^"]*)" with admin token "([^"]*)"$`, steps.getWithToken)
	ctx.Step(`^I POST to "([^"]*)" as an operator$`, steps.postAsOperator)
	ctx.Step(`^the site list should include the default directory$`, steps.siteListIncludesDefault)
}

type adminSteps struct {
	tc TestContext
}

func (s *adminSteps) getAsOperator(_ context.Context, path string) error {
	return s.tc.GET(path, s.tc.AdminHeaders())
}

func (s *adminSteps) getWithToken(_ context.Context, path, token string) error {
	return s.tc.GET(path, map[string]string{"X-Admin-Token": token})
}

func (s *adminSteps) postAsOperator(_ context.Context, path string) error {
	return s.tc.POST(path, map[string]any{}, s.tc.AdminHeaders())
}

func (s *adminSteps) siteListIncludesDefault(context.Context) error {
	var body struct {
		Sites []struct {
			Key      string `json:"key"`
			Reserved bool   `json:"reserved"`
		} `json:"sites"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &body); err != nil {
		return fmt.Errorf("failed to decode site list: %w", err)
	}
	for _, site := range body.Sites {
		if site.Key == "DefaultUDDIInquiryService" && site.Reserved {
			return nil
		}
	}
	return fmt.Errorf("default directory missing from %s", string(s.tc.GetLastResponseBody()))
}

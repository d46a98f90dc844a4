package e2e

import (
	"github.com/cucumber/godog"

	"esbresolver/e2e/steps/admin"
	"esbresolver/e2e/steps/common"
	"esbresolver/e2e/steps/policy"
)

// RegisterSteps registers all step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	admin.RegisterSteps(ctx, tc)
	policy.RegisterSteps(ctx, tc)
}

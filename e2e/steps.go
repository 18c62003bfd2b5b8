package e2e

import (
	"github.com/cucumber/godog"

	"visacheck/e2e/steps/common"
	"visacheck/e2e/steps/ratelimit"
	"visacheck/e2e/steps/visa"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register visa check steps
	visa.RegisterSteps(ctx, tc)

	// Register rate limiting steps
	ratelimit.RegisterSteps(ctx, tc)
}

package ratelimit

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any, headers map[string]string) error
	GetLastResponseStatus() int
	GetLastResponseHeader(key string) string
}

// RegisterSteps registers rate-limiting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I am checking visas from IP "([^"]*)"$`, steps.checkingFromIP)
	ctx.Step(`^I send (\d+) visa checks$`, steps.sendChecks)
	ctx.Step(`^every check should have succeeded$`, steps.everyCheckSucceeded)
	ctx.Step(`^at least one check should have been rate limited$`, steps.atLeastOneLimited)
	ctx.Step(`^the last response should carry a Retry-After header$`, steps.lastHasRetryAfter)
	ctx.Step(`^the last response should report (\d+) requests remaining$`, steps.lastReportsRemaining)
}

type ratelimitSteps struct {
	tc TestContext
	// State for tracking across steps
	currentIP string
	statuses  []int
}

func (s *ratelimitSteps) checkingFromIP(ip string) error {
	s.currentIP = ip
	s.statuses = nil
	return nil
}

func (s *ratelimitSteps) sendChecks(n int) error {
	headers := map[string]string{}
	if s.currentIP != "" {
		headers["X-Forwarded-For"] = s.currentIP
	}
	for range n {
		if err := s.tc.POST("/visa/check", map[string]any{"civil_id": "281234567890"}, headers); err != nil {
			return err
		}
		s.statuses = append(s.statuses, s.tc.GetLastResponseStatus())
	}
	return nil
}

func (s *ratelimitSteps) everyCheckSucceeded() error {
	for i, status := range s.statuses {
		if status != 200 {
			return fmt.Errorf("check %d returned %d", i+1, status)
		}
	}
	return nil
}

func (s *ratelimitSteps) atLeastOneLimited() error {
	for _, status := range s.statuses {
		if status == 429 {
			return nil
		}
	}
	return fmt.Errorf("no check was rate limited across %d requests", len(s.statuses))
}

func (s *ratelimitSteps) lastHasRetryAfter() error {
	v := s.tc.GetLastResponseHeader("Retry-After")
	if v == "" {
		return fmt.Errorf("missing Retry-After header")
	}
	if secs, err := strconv.Atoi(v); err != nil || secs < 1 {
		return fmt.Errorf("invalid Retry-After %q", v)
	}
	return nil
}

func (s *ratelimitSteps) lastReportsRemaining(expected int) error {
	got := s.tc.GetLastResponseHeader("X-RateLimit-Remaining")
	if got != strconv.Itoa(expected) {
		return fmt.Errorf("expected X-RateLimit-Remaining %d, got %q", expected, got)
	}
	return nil
}

package visa

import (
	"fmt"
	"slices"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any, headers map[string]string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
}

var knownStatuses = []string{"valid", "expiring_soon", "expired"}

// RegisterSteps registers visa check step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &visaSteps{tc: tc}

	ctx.Step(`^I check the civil ID "([^"]*)"$`, steps.checkCivilID)
	ctx.Step(`^I check the civil ID "([^"]*)" for a "([^"]*)" visa$`, steps.checkCivilIDForCategory)
	ctx.Step(`^I check the passport "([^"]*)" issued by "([^"]*)"$`, steps.checkPassport)
	ctx.Step(`^I check the civil ID "([^"]*)" with a visa expiring in (-?\d+) days$`, steps.checkCivilIDExpiringIn)
	ctx.Step(`^I check the civil ID "([^"]*)" with a visa issued on "([^"]*)" and expiring on "([^"]*)"$`, steps.checkCivilIDWithWindow)
	ctx.Step(`^the visa status should be one of the known statuses$`, steps.statusShouldBeKnown)
	ctx.Step(`^the days remaining should not be negative$`, steps.daysRemainingNotNegative)
	ctx.Step(`^the rejection reason should be "([^"]*)"$`, steps.rejectionReasonShouldBe)
}

type visaSteps struct {
	tc TestContext
}

func (s *visaSteps) checkCivilID(id string) error {
	return s.check(map[string]any{"civil_id": id})
}

func (s *visaSteps) checkCivilIDForCategory(id, category string) error {
	return s.check(map[string]any{"civil_id": id, "visa_type": category})
}

func (s *visaSteps) checkPassport(number, country string) error {
	return s.check(map[string]any{
		"id_type":         "passport",
		"passport_number": number,
		"nationality":     country,
	})
}

// The server evaluates against its own clock, so the window is anchored on
// today in UTC and the scenario avoids days near a band edge.
func (s *visaSteps) checkCivilIDExpiringIn(id string, days int) error {
	expiry := time.Now().UTC().AddDate(0, 0, days)
	return s.checkCivilIDWithWindow(id,
		expiry.AddDate(-2, 0, 0).Format(time.DateOnly),
		expiry.Format(time.DateOnly))
}

func (s *visaSteps) checkCivilIDWithWindow(id, issued, expires string) error {
	return s.check(map[string]any{
		"civil_id":    id,
		"issue_date":  issued,
		"expiry_date": expires,
	})
}

func (s *visaSteps) check(body map[string]any) error {
	return s.tc.POST("/visa/check", body, nil)
}

func (s *visaSteps) statusShouldBeKnown() error {
	v, err := s.tc.GetResponseField("status")
	if err != nil {
		return err
	}
	if !slices.Contains(knownStatuses, fmt.Sprint(v)) {
		return fmt.Errorf("unexpected status %v", v)
	}
	return nil
}

func (s *visaSteps) daysRemainingNotNegative() error {
	v, err := s.tc.GetResponseField("days_remaining")
	if err != nil {
		return err
	}
	days, ok := v.(float64)
	if !ok {
		return fmt.Errorf("days_remaining is not a number: %v", v)
	}
	if days < 0 {
		return fmt.Errorf("days_remaining is negative: %v", days)
	}
	return nil
}

func (s *visaSteps) rejectionReasonShouldBe(reason string) error {
	if status := s.tc.GetLastResponseStatus(); status != 400 {
		return fmt.Errorf("expected a 400 rejection, got %d", status)
	}
	v, err := s.tc.GetResponseField("reason")
	if err != nil {
		return err
	}
	if v != reason {
		return fmt.Errorf("expected reason %q, got %v", reason, v)
	}
	return nil
}

//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

func registerSteps(ctx *godog.ScenarioContext, t *testContext) {
	// Background steps
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)

	// Auth steps
	ctx.Given(`^I am authenticated as "([^"]*)"$`, t.iAmAuthenticatedAs)
	ctx.Given(`^I am not authenticated$`, t.iAmNotAuthenticated)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
	ctx.When(`^I save the response field "([^"]*)" as "([^"]*)"$`, t.iSaveTheResponseFieldAs)

	// Background job steps
	ctx.When(`^the email worker processes the queue$`, t.theEmailWorkerProcessesTheQueue)
	ctx.When(`^the recurring daemon runs$`, t.theRecurringDaemonRuns)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, t.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, t.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues)

	// External API assertion steps
	ctx.Then(`^the email API should have received (\d+) requests?$`, t.theEmailAPIShouldHaveReceivedRequests)
	ctx.Then(`^the email API should have received an email with subject "([^"]*)"$`, t.theEmailAPIShouldHaveReceivedAnEmailWithSubject)
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (t *testContext) iAmAuthenticatedAs(email string) error {
	token, err := t.injector.TokenService.GenerateAccessToken(context.Background(), t.userID(email), email)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, endpoint string) error {
	return t.send(method, endpoint, nil)
}

func (t *testContext) iSendARequestToWithBody(method, endpoint string, body *godog.DocString) error {
	return t.send(method, endpoint, []byte(t.expand(body.Content)))
}

func (t *testContext) send(method, endpoint string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, t.server.URL+t.expand(endpoint), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	t.status = resp.StatusCode
	t.body, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_:+-]+)\}`)

// expand replaces {name} with saved values and {date:N} with today shifted by N days.
func (t *testContext) expand(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		name := match[1 : len(match)-1]
		if offset, ok := strings.CutPrefix(name, "date:"); ok {
			days, err := strconv.Atoi(offset)
			if err != nil {
				return match
			}
			return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
		}
		if value, ok := t.vars[name]; ok {
			return value
		}
		return match
	})
}

func (t *testContext) iSaveTheResponseFieldAs(field, name string) error {
	value, err := t.field(field)
	if err != nil {
		return err
	}
	t.vars[name] = fmt.Sprintf("%v", value)
	return nil
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theRecurringDaemonRuns() error {
	if !t.injector.RecurringDaemon.RunOnce(context.Background()) {
		return fmt.Errorf("recurring daemon did not run")
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expected int) error {
	if t.status != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, t.status, string(t.body))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if !strings.Contains(string(t.body), t.expand(expected)) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(t.body))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := t.field(field)
	if err != nil {
		return err
	}
	expected = t.expand(expected)
	if actual := formatValue(value); actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.field(field)
	return err
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.field(field)
	if err != nil {
		return err
	}
	var size int
	switch v := value.(type) {
	case []any:
		size = len(v)
	case map[string]any:
		size = len(v)
	default:
		return fmt.Errorf("field '%s' is not a collection", field)
	}
	if size != count {
		return fmt.Errorf("field '%s' expected %d items, got %d. Body: %s", field, count, size, string(t.body))
	}
	return nil
}

// field resolves a dotted path such as "goal.milestones.0.is_completed" in the last response.
func (t *testContext) field(path string) (any, error) {
	var data any
	decoder := json.NewDecoder(bytes.NewReader(t.body))
	decoder.UseNumber()
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(t.expand(path), ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(t.body))
			}
			current = next
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in '%s'", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response: %s", path, string(t.body))
		}
	}
	return current, nil
}

func formatValue(value any) string {
	if value == nil {
		return "null"
	}
	return fmt.Sprintf("%v", value)
}

func (t *testContext) theDbShouldContainObjectsInTheTable(count int, table string) error {
	actual, err := t.db.Count(table, nil)
	if err != nil {
		return err
	}
	if actual != int64(count) {
		return fmt.Errorf("expected %d rows in %s, got %d", count, table, actual)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(count int, table string, values *godog.Table) error {
	if len(values.Rows) < 2 {
		return fmt.Errorf("table needs a header row and at least one value row")
	}

	header := values.Rows[0].Cells
	for _, row := range values.Rows[1:] {
		where := map[string]any{}
		for i, cell := range row.Cells {
			where[header[i].Value] = t.expand(cell.Value)
		}
		actual, err := t.db.Count(table, where)
		if err != nil {
			return err
		}
		if actual != int64(count) {
			return fmt.Errorf("expected %d rows in %s matching %v, got %d", count, table, where, actual)
		}
	}
	return nil
}

func (t *testContext) theEmailAPIShouldHaveReceivedRequests(count int) error {
	if actual := len(emailAPI.Requests(http.MethodPost, "/emails")); actual != count {
		return fmt.Errorf("expected %d email requests, got %d", count, actual)
	}
	return nil
}

func (t *testContext) theEmailAPIShouldHaveReceivedAnEmailWithSubject(subject string) error {
	requests := emailAPI.Requests(http.MethodPost, "/emails")
	for _, request := range requests {
		if request.Body["subject"] == subject {
			return nil
		}
	}
	return fmt.Errorf("no email with subject %q among %d requests", subject, len(requests))
}

// Package steps provides step definitions for the BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/payment-mindmap/backend/config"
	"github.com/payment-mindmap/backend/internal/infra/dependency"
	"github.com/payment-mindmap/backend/internal/integration/persistence/model"
	"github.com/payment-mindmap/backend/test/integration/mock"
)

type testContext struct {
	uri        string
	client     *http.Client
	response   *response
	db         *mock.Db
	serverPort int

	budgetID          string
	recipients        map[string]string
	lastTransactionID string
	transferID        string
	outgoingID        string
	incomingID        string
}

type response struct {
	status int
	body   any
	raw    []byte
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb(map[string]any{
			"budgets":      &model.BudgetModel{},
			"recipients":   &model.RecipientModel{},
			"transactions": &model.TransactionModel{},
			"settings":     &model.SettingModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Data setup steps
	ctx.Given(`^a budget "([^"]*)" exists with initial payment (\d+)$`, test.aBudgetExistsWithInitialPayment)
	ctx.Given(`^a recipient "([^"]*)" exists with amount (-?\d+)$`, test.aRecipientExistsWithAmount)
	ctx.Given(`^the recipient "([^"]*)" has a transaction of (-?\d+)$`, test.theRecipientHasATransactionOf)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.response = nil
	t.budgetID = ""
	t.recipients = make(map[string]string)
	t.lastTransactionID = ""
	t.transferID = ""
	t.outgoingID = ""
	t.incomingID = ""

	return t.db.ClearDB()
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			cfg := config.Load()
			injector := dependency.NewInjector(cfg, testDB.DbConn, func() bool {
				return testDB != nil && testDB.DbConn != nil
			})
			engine := injector.Router.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aBudgetExistsWithInitialPayment(name string, initialPayment int) error {
	// Lists order by created_at; keep consecutive seeds strictly apart.
	time.Sleep(2 * time.Millisecond)

	now := time.Now().UTC()
	budget := &model.BudgetModel{
		ID:             fmt.Sprintf("budget-%d", now.UnixNano()),
		Name:           name,
		InitialPayment: decimal.NewFromInt(int64(initialPayment)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := t.db.DbConn.Create(budget).Error; err != nil {
		return err
	}
	t.budgetID = budget.ID

	pointer := &model.SettingModel{
		Key:       model.SettingActiveBudgetID,
		Value:     budget.ID,
		UpdatedAt: now,
	}
	return t.db.DbConn.Save(pointer).Error
}

func (t *testContext) aRecipientExistsWithAmount(name string, amount int) error {
	// Lists order by created_at; keep consecutive seeds strictly apart.
	time.Sleep(2 * time.Millisecond)

	payload := fmt.Sprintf(`{"name": %q, "amount": %d, "description": "initial payment"}`, name, amount)
	if err := t.executeRequest(http.MethodPost, "/api/v1/recipients", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to seed recipient %s: status %d body %v", name, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theRecipientHasATransactionOf(name string, amount int) error {
	id, ok := t.recipients[name]
	if !ok {
		return fmt.Errorf("recipient %s was not created in this scenario", name)
	}
	payload := fmt.Sprintf(`{"amount": %d, "description": "follow-up payment"}`, amount)
	path := fmt.Sprintf("/api/v1/recipients/%s/transactions", id)
	if err := t.executeRequest(http.MethodPost, path, []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to seed transaction for %s: status %d body %v", name, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{budget_id}}", t.budgetID)
	content = strings.ReplaceAll(content, "{{last_transaction_id}}", t.lastTransactionID)
	content = strings.ReplaceAll(content, "{{transfer_id}}", t.transferID)
	content = strings.ReplaceAll(content, "{{outgoing_id}}", t.outgoingID)
	content = strings.ReplaceAll(content, "{{incoming_id}}", t.incomingID)
	for name, id := range t.recipients {
		content = strings.ReplaceAll(content, "{{recipient:"+name+"}}", id)
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path
	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
		raw:    bodyBytes,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.capture(responseBody)
	return nil
}

// capture stashes ids from known response shapes so later steps can address
// the created objects through placeholders.
func (t *testContext) capture(body map[string]any) {
	id, _ := body["id"].(string)

	// A created budget carries initialPayment, a created recipient totalAmount.
	if _, ok := body["initialPayment"]; ok && id != "" {
		t.budgetID = id
	}
	if name, ok := body["name"].(string); ok && id != "" {
		if _, ok := body["totalAmount"]; ok {
			t.recipients[name] = id
		}
	}

	if transactions, ok := body["transactions"].([]any); ok && len(transactions) > 0 {
		if last, ok := transactions[len(transactions)-1].(map[string]any); ok {
			if txnID, ok := last["id"].(string); ok {
				t.lastTransactionID = txnID
			}
		}
	}
	if transaction, ok := body["transaction"].(map[string]any); ok {
		if txnID, ok := transaction["id"].(string); ok {
			t.lastTransactionID = txnID
		}
	}

	if transferID, ok := body["transferId"].(string); ok {
		t.transferID = transferID
	}
	if outgoing, ok := body["outgoing"].(map[string]any); ok {
		if legID, ok := outgoing["id"].(string); ok {
			t.outgoingID = legID
		}
	}
	if incoming, ok := body["incoming"].(map[string]any); ok {
		if legID, ok := incoming["id"].(string); ok {
			t.incomingID = legID
		}
	}
	if toRecipient, ok := body["toRecipient"].(map[string]any); ok {
		if name, ok := toRecipient["name"].(string); ok {
			if recID, ok := toRecipient["id"].(string); ok {
				t.recipients[name] = recID
			}
		}
	}

	// A mindmap snapshot refreshes the recipient index.
	if recipients, ok := body["recipients"].([]any); ok {
		for _, raw := range recipients {
			if recipient, ok := raw.(map[string]any); ok {
				name, _ := recipient["name"].(string)
				recID, _ := recipient["id"].(string)
				if name != "" && recID != "" {
					t.recipients[name] = recID
				}
				if transactions, ok := recipient["transactions"].([]any); ok && len(transactions) > 0 {
					if last, ok := transactions[len(transactions)-1].(map[string]any); ok {
						if txnID, ok := last["id"].(string); ok {
							t.lastTransactionID = txnID
						}
					}
				}
			}
		}
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	result := t.db.DbConn.Find(entitySlicePtr.Interface())
	if result.Error != nil {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

// getFieldValue walks a dot-separated path through nested JSON, with numeric
// segments indexing into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	objectMap, ok := object.(map[string]any)
	if !ok {
		return nil
	}

	var field any = objectMap
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
				continue
			}
			return nil
		}

		if m, ok := field.(map[string]any); ok {
			field = m[currentField]
		} else {
			return nil
		}
	}
	return field
}

package returns_test

import (
	"context"
	"sync"

	"returnnotify/internal/config"
	"returnnotify/internal/directory"
	"returnnotify/internal/logging"
	"returnnotify/internal/messaging"
	"returnnotify/internal/returns"
)

type fakeDirectory struct {
	mu          sync.Mutex
	resellers   map[int64]*directory.Reseller
	contractors map[int64]*directory.Contractor
	employees   map[int64]*directory.Employee
	emailFrom   map[int64]string
	permits     map[int64][]string
	lookupErr   error
	calls       int
}

func (f *fakeDirectory) ResellerByID(_ context.Context, id int64) (*directory.Reseller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.resellers[id], nil
}

func (f *fakeDirectory) ContractorByID(_ context.Context, id int64) (*directory.Contractor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.contractors[id], nil
}

func (f *fakeDirectory) EmployeeByID(_ context.Context, id int64) (*directory.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.employees[id], nil
}

func (f *fakeDirectory) ResellerEmailFrom(_ context.Context, resellerID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.emailFrom[resellerID], nil
}

func (f *fakeDirectory) EmailsByPermit(_ context.Context, resellerID int64, permit string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if permit != "tsGoodsReturn" {
		return nil, nil
	}
	return f.permits[resellerID], nil
}

type fakeStatuses map[int64]string

func (f fakeStatuses) Name(_ context.Context, code int64) string {
	return f[code]
}

type renderCall struct {
	values     map[string]string
	resellerID int64
}

// fakeTemplates renders the status-change template as FROM->TO and every
// other key as the key itself.
type fakeTemplates struct {
	mu    sync.Mutex
	calls map[string]renderCall
}

func (f *fakeTemplates) Render(_ context.Context, key string, values map[string]string, resellerID int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]renderCall{}
	}
	f.calls[key] = renderCall{values: values, resellerID: resellerID}
	if key == returns.TemplateStatusChanged {
		return values["FROM"] + "->" + values["TO"]
	}
	return key
}

func (f *fakeTemplates) call(key string) (renderCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.calls[key]
	return c, ok
}

func (f *fakeTemplates) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type mailBatch struct {
	messages []messaging.Email
	route    messaging.Route
}

type fakeMailer struct {
	mu      sync.Mutex
	batches []mailBatch
	err     error
	rejects map[string]error
}

func (f *fakeMailer) SendMessage(_ context.Context, messages []messaging.Email, route messaging.Route) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, mailBatch{messages: messages, route: route})
	for _, m := range messages {
		if err, ok := f.rejects[m.To]; ok {
			return err
		}
	}
	return f.err
}

func (f *fakeMailer) sent() []mailBatch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailBatch(nil), f.batches...)
}

type fakeSMS struct {
	mu       sync.Mutex
	requests []messaging.SMSRequest
	sent     bool
	errText  string
	panicMsg string
}

func (f *fakeSMS) Send(_ context.Context, req messaging.SMSRequest) (bool, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.sent, f.errText
}

func (f *fakeSMS) calls() []messaging.SMSRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]messaging.SMSRequest(nil), f.requests...)
}

type harness struct {
	dir       *fakeDirectory
	templates *fakeTemplates
	mailer    *fakeMailer
	sms       *fakeSMS
	channels  config.Channels
}

// newHarness returns collaborators for reseller 7 with customer 5 (email
// and mobile), creator 1, expert 2 and one subscribed staff address.
func newHarness() *harness {
	cfg := config.Default()
	return &harness{
		dir: &fakeDirectory{
			resellers: map[int64]*directory.Reseller{
				7: {ID: 7, Name: "Shop"},
				8: {ID: 8, Name: "Other shop"},
			},
			contractors: map[int64]*directory.Contractor{
				5: {ID: 5, ResellerID: 7, Type: directory.ContractorTypeCustomer, Name: "ivan", FirstName: "Ivan", LastName: "Petrov", Email: "ivan@example.com", Mobile: "+15550100"},
				6: {ID: 6, ResellerID: 7, Type: "supplier", Name: "Supplier"},
				9: {ID: 9, ResellerID: 8, Type: directory.ContractorTypeCustomer, Name: "elsewhere"},
			},
			employees: map[int64]*directory.Employee{
				1: {ID: 1, ResellerID: 7, FirstName: "Cora", LastName: "Creator"},
				2: {ID: 2, ResellerID: 7, FirstName: "Ed", LastName: "Expert"},
			},
			emailFrom: map[int64]string{7: "returns@shop.example"},
			permits:   map[int64][]string{7: {"staff@shop.example"}},
		},
		templates: &fakeTemplates{},
		mailer:    &fakeMailer{},
		sms:       &fakeSMS{sent: true},
		channels:  cfg.Channels,
	}
}

func (h *harness) operation() *returns.Operation {
	return returns.NewOperation(returns.Dependencies{
		Resellers: h.dir,
		Clients:   h.dir,
		Employees: h.dir,
		Settings:  h.dir,
		Statuses:  fakeStatuses{1: "Pending", 2: "Rejected"},
		Templates: h.templates,
		Mailer:    h.mailer,
		SMS:       h.sms,
	}, h.channels, logging.NewNop())
}

func changeEvent() returns.ChangeEvent {
	return returns.ChangeEvent{
		ResellerID:        7,
		NotificationType:  returns.TypeChange,
		Differences:       &returns.Differences{From: 1, To: 2},
		ClientID:          5,
		CreatorID:         1,
		ExpertID:          2,
		ComplaintID:       9,
		ComplaintNumber:   "C-1",
		ConsumptionID:     3,
		ConsumptionNumber: "N-1",
		AgreementNumber:   "A-1",
		Date:              "2024-01-01",
	}
}

func newEvent() returns.ChangeEvent {
	event := changeEvent()
	event.NotificationType = returns.TypeNew
	event.Differences = nil
	return event
}

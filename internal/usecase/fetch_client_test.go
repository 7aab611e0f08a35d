package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/sportsfeed/internal/domain/externalapi"
	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
	externalapimock "github.com/riskibarqy/sportsfeed/internal/mocks/domain/externalapi"
	requestauditmock "github.com/riskibarqy/sportsfeed/internal/mocks/domain/requestaudit"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

const matchesURL = "https://api.football-data.org/v2/competitions/2021/matches"

var matchesRequestType = externalapi.RequestType{
	ID:          1,
	APIID:       1,
	URLTemplate: "https://api.football-data.org/v2/competitions/[competition_id]/matches",
	Description: "competition matches",
}

type fakeTransport struct {
	resp  *TransportResponse
	err   error
	calls int
	url   string
}

func (f *fakeTransport) Get(_ context.Context, url string, _ map[string]string) (*TransportResponse, error) {
	f.calls++
	f.url = url
	return f.resp, f.err
}

type fakeProvider struct {
	validateErr   error
	handled       bool
	handleErr     error
	validateCalls int
	handleCalls   int
}

func (p *fakeProvider) Headers() map[string]string {
	return map[string]string{"X-Auth-Token": "token"}
}

func (p *fakeProvider) Validate(map[string]any) error {
	p.validateCalls++
	return p.validateErr
}

func (p *fakeProvider) HandleContent(context.Context, externalapi.API, map[string]any) (bool, error) {
	p.handleCalls++
	return p.handled, p.handleErr
}

type fixedIDGenerator string

func (g fixedIDGenerator) NewID() (string, error) { return string(g), nil }

type fetchClientDeps struct {
	apis      *externalapimock.Repository
	audits    *requestauditmock.Repository
	transport *fakeTransport
	provider  *fakeProvider
}

func newFetchClientForTest(t *testing.T, cfg FetchClientConfig, locker externalapi.Locker) (*FetchClient, fetchClientDeps) {
	t.Helper()

	deps := fetchClientDeps{
		apis:      externalapimock.NewRepository(t),
		audits:    requestauditmock.NewRepository(t),
		transport: &fakeTransport{resp: &TransportResponse{StatusCode: 200, Body: []byte(`{"matches":[]}`)}},
		provider:  &fakeProvider{handled: true},
	}
	deps.apis.On("GetAPIByID", mock.Anything, int64(1)).Return(footballDataAPI, true, nil).Maybe()
	deps.apis.On("GetRequestTypeByID", mock.Anything, int64(1)).Return(matchesRequestType, true, nil).Maybe()

	if cfg.APIID == 0 {
		cfg.APIID = 1
	}
	if cfg.RequestTypeID == 0 {
		cfg.RequestTypeID = 1
	}
	if cfg.URL == "" && cfg.URLArgs == nil {
		cfg.URLArgs = []string{"2021"}
	}

	client := NewFetchClient(
		cfg,
		deps.apis,
		deps.audits,
		NewCooldownPolicy(deps.audits, PerMinuteScopeGlobal),
		locker,
		deps.transport,
		deps.provider,
		fixedIDGenerator("audit-1"),
		logging.NewNop(),
	)
	return client, deps
}

func (d fetchClientDeps) expectNoCooldown() {
	d.audits.On("LatestRequestTime", mock.Anything, int64(1)).Return(time.Time{}, false, nil).Once()
}

func TestFetchClient_CooldownSkipsNetwork(t *testing.T) {
	t.Parallel()

	client, deps := newFetchClientForTest(t, FetchClientConfig{}, nil)
	deps.audits.On("LatestRequestTime", mock.Anything, int64(1)).Return(time.Now().UTC(), true, nil).Once()

	ok, err := client.Request(context.Background())
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !ok {
		t.Fatalf("expected cooldown skip to report success")
	}
	if deps.transport.calls != 0 {
		t.Fatalf("unexpected transport calls: got=%d want=0", deps.transport.calls)
	}
	deps.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFetchClient_URLGenerationFailure(t *testing.T) {
	t.Parallel()

	client, deps := newFetchClientForTest(t, FetchClientConfig{URLArgs: []string{}}, nil)
	deps.expectNoCooldown()

	_, err := client.Request(context.Background())
	if !errors.Is(err, ErrURLGeneration) {
		t.Fatalf("expected ErrURLGeneration, got %v", err)
	}
	if !errors.Is(err, externalapi.ErrURLTemplate) {
		t.Fatalf("expected wrapped template error, got %v", err)
	}
	if deps.transport.calls != 0 {
		t.Fatalf("unexpected transport calls: got=%d want=0", deps.transport.calls)
	}
}

func TestFetchClient_ExplicitURLSkipsTemplate(t *testing.T) {
	t.Parallel()

	client, deps := newFetchClientForTest(t, FetchClientConfig{URL: "http://localhost/matches"}, nil)
	deps.expectNoCooldown()
	deps.transport.resp = &TransportResponse{StatusCode: 503}

	if _, err := client.Request(context.Background()); err != nil {
		t.Fatalf("request: %v", err)
	}
	if deps.transport.url != "http://localhost/matches" {
		t.Fatalf("unexpected url: got=%s want=http://localhost/matches", deps.transport.url)
	}
}

func TestFetchClient_ResponseGateWritesNoAudit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		resp *TransportResponse
		err  error
	}{
		{name: "transport error", err: errors.New("dial tcp: refused")},
		{name: "nil response"},
		{name: "server error", resp: &TransportResponse{StatusCode: 500, Body: []byte(`{}`)}},
		{name: "empty body", resp: &TransportResponse{StatusCode: 200}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client, deps := newFetchClientForTest(t, FetchClientConfig{}, nil)
			deps.expectNoCooldown()
			deps.transport.resp = tc.resp
			deps.transport.err = tc.err

			ok, err := client.Request(context.Background())
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if ok {
				t.Fatalf("expected failure result")
			}
			if deps.transport.url != matchesURL {
				t.Fatalf("unexpected url: got=%s want=%s", deps.transport.url, matchesURL)
			}
			deps.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestFetchClient_DuplicateResponseShortCircuits(t *testing.T) {
	t.Parallel()

	client, deps := newFetchClientForTest(t, FetchClientConfig{}, nil)
	deps.expectNoCooldown()
	deps.audits.
		On("Create", mock.Anything, mock.MatchedBy(func(a requestaudit.Audit) bool {
			return a.ID == "audit-1" && !a.Successful && a.URL == matchesURL && a.ContentHash == hashContent(deps.transport.resp.Body)
		})).
		Return(nil).
		Once()
	deps.audits.On("HasSuccessfulDuplicate", mock.Anything, int64(1), hashContent(deps.transport.resp.Body), "audit-1").Return(true, nil).Once()

	ok, err := client.Request(context.Background())
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !ok {
		t.Fatalf("expected duplicate response to report success")
	}
	if deps.provider.validateCalls != 0 || deps.provider.handleCalls != 0 {
		t.Fatalf("duplicate response must not be reprocessed: validate=%d handle=%d", deps.provider.validateCalls, deps.provider.handleCalls)
	}
	deps.audits.AssertNotCalled(t, "MarkSuccessful", mock.Anything, mock.Anything)
}

func TestFetchClient_ValidationFailureLeavesAuditUnsuccessful(t *testing.T) {
	t.Parallel()

	client, deps := newFetchClientForTest(t, FetchClientConfig{}, nil)
	deps.expectNoCooldown()
	deps.provider.validateErr = errors.New("competition mismatch")
	deps.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	deps.audits.On("HasSuccessfulDuplicate", mock.Anything, int64(1), mock.Anything, "audit-1").Return(false, nil).Once()

	ok, err := client.Request(context.Background())
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if ok {
		t.Fatalf("expected validation failure")
	}
	if deps.provider.handleCalls != 0 {
		t.Fatalf("content must not be handled after validation failure")
	}
	deps.audits.AssertNotCalled(t, "MarkSuccessful", mock.Anything, mock.Anything)
}

func TestFetchClient_NonObjectBodyFails(t *testing.T) {
	t.Parallel()

	client, deps := newFetchClientForTest(t, FetchClientConfig{}, nil)
	deps.expectNoCooldown()
	deps.transport.resp = &TransportResponse{StatusCode: 200, Body: []byte(`[1,2,3]`)}
	deps.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	deps.audits.On("HasSuccessfulDuplicate", mock.Anything, int64(1), mock.Anything, "audit-1").Return(false, nil).Once()

	ok, err := client.Request(context.Background())
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if ok {
		t.Fatalf("expected non-object body to fail")
	}
	if deps.provider.validateCalls != 0 {
		t.Fatalf("provider validation must not run on unparsable body")
	}
}

func TestFetchClient_PartialContentFailure(t *testing.T) {
	t.Parallel()

	client, deps := newFetchClientForTest(t, FetchClientConfig{}, nil)
	deps.expectNoCooldown()
	deps.provider.handled = false
	deps.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	deps.audits.On("HasSuccessfulDuplicate", mock.Anything, int64(1), mock.Anything, "audit-1").Return(false, nil).Once()

	ok, err := client.Request(context.Background())
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if ok {
		t.Fatalf("expected batch failure")
	}
	deps.audits.AssertNotCalled(t, "MarkSuccessful", mock.Anything, mock.Anything)
}

func TestFetchClient_SuccessMarksAuditUnderLock(t *testing.T) {
	t.Parallel()

	locker := externalapimock.NewLocker(t)
	locked := false
	locker.
		On("WithLock", mock.Anything, int64(1), mock.Anything).
		Return(func(ctx context.Context, _ int64, fn func(context.Context) error) error {
			locked = true
			return fn(ctx)
		}).
		Once()

	client, deps := newFetchClientForTest(t, FetchClientConfig{}, locker)
	deps.expectNoCooldown()
	deps.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	deps.audits.On("HasSuccessfulDuplicate", mock.Anything, int64(1), mock.Anything, "audit-1").Return(false, nil).Once()
	deps.audits.On("MarkSuccessful", mock.Anything, "audit-1").Return(nil).Once()

	ok, err := client.Request(context.Background())
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !ok {
		t.Fatalf("expected success")
	}
	if !locked {
		t.Fatalf("expected lifecycle to run under the api lock")
	}
	if deps.provider.handleCalls != 1 {
		t.Fatalf("unexpected handle calls: got=%d want=1", deps.provider.handleCalls)
	}
}

func TestFetchClient_PersistenceErrorIsReturned(t *testing.T) {
	t.Parallel()

	client, deps := newFetchClientForTest(t, FetchClientConfig{}, nil)
	deps.expectNoCooldown()
	errDB := errors.New("insert failed")
	deps.audits.On("Create", mock.Anything, mock.Anything).Return(errDB).Once()

	_, err := client.Request(context.Background())
	if !errors.Is(err, errDB) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestFetchClient_UnknownAPIIsConfigurationError(t *testing.T) {
	t.Parallel()

	client, deps := newFetchClientForTest(t, FetchClientConfig{APIID: 9}, nil)
	deps.apis.On("GetAPIByID", mock.Anything, int64(9)).Return(externalapi.API{}, false, nil).Once()

	_, err := client.Request(context.Background())
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

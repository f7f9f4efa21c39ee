package service

import (
	"context"
	"sync"

	"assessform-client/internal/apperror"
	"assessform-client/internal/dto"
	"assessform-client/internal/repository/memory"
	"assessform-client/pkg/formsapi"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeClient scripts the remote collaborator and counts every call so tests
// can assert which operations hit the network.
type fakeClient struct {
	mu sync.Mutex

	statusRes   *dto.CompanyStatusResponse
	statusErr   error
	employeeRes *dto.EmployeeLookupResponse
	employeeErr error
	companyRes  *dto.CompanyLookupResponse
	companyErr  error
	configRes   []dto.QuestionDefinition
	saveFunc    func(req *dto.SaveResponseRequest) (*dto.SaveResponseResult, error)

	statusCalls   int
	employeeCalls int
	companyCalls  int
	saveCalls     int
	saveRequests  []*dto.SaveResponseRequest
}

var _ formsapi.Client = &fakeClient{}

func (f *fakeClient) FormConfig(context.Context, string) ([]dto.QuestionDefinition, error) {
	return f.configRes, nil
}

func (f *fakeClient) CompanyStatus(context.Context, string) (*dto.CompanyStatusResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if f.statusRes == nil {
		return &dto.CompanyStatusResponse{EmployeeIDs: []int{}}, nil
	}
	return f.statusRes, nil
}

func (f *fakeClient) Employee(context.Context, string, int) (*dto.EmployeeLookupResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.employeeCalls++
	if f.employeeErr != nil {
		return nil, f.employeeErr
	}
	if f.employeeRes == nil {
		return &dto.EmployeeLookupResponse{Found: false}, nil
	}
	return f.employeeRes, nil
}

func (f *fakeClient) Company(context.Context, string) (*dto.CompanyLookupResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.companyCalls++
	if f.companyErr != nil {
		return nil, f.companyErr
	}
	if f.companyRes == nil {
		return &dto.CompanyLookupResponse{Found: false}, nil
	}
	return f.companyRes, nil
}

func (f *fakeClient) SaveResponses(_ context.Context, req *dto.SaveResponseRequest) (*dto.SaveResponseResult, error) {
	f.mu.Lock()
	f.saveCalls++
	f.saveRequests = append(f.saveRequests, req)
	fn := f.saveFunc
	f.mu.Unlock()

	if fn == nil {
		return &dto.SaveResponseResult{Message: "saved"}, nil
	}
	return fn(req)
}

func (f *fakeClient) PresignUpload(context.Context, *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error) {
	return nil, apperror.New(apperror.KindServiceUnavailable, "not scripted")
}

func (f *fakeClient) UploadPresigned(context.Context, string, string, []byte) error {
	return apperror.New(apperror.KindServiceUnavailable, "not scripted")
}

func (f *fakeClient) LegacyUpload(context.Context, string, string, string, string, []byte) (*dto.LegacyUploadResponse, error) {
	return nil, apperror.New(apperror.KindServiceUnavailable, "not scripted")
}

type testEngine struct {
	client   *fakeClient
	status   ICompanyStatusService
	session  ISessionService
	response IResponseService
	form     IFormService
}

func newTestEngine(client *fakeClient) *testEngine {
	log := nopLogger{}
	statusRepo := memory.NewCompanyStatusRepository()
	status := NewCompanyStatusService(client, statusRepo, log)
	session := NewSessionService(client, status, log)
	response := NewResponseService(client, session, status, log)
	session.SetResponseStore(response)
	form := NewFormService(client, session, response, log)

	return &testEngine{
		client:   client,
		status:   status,
		session:  session,
		response: response,
		form:     form,
	}
}

func rosterStatus(ids []int, next int) *dto.CompanyStatusResponse {
	return &dto.CompanyStatusResponse{
		EmployeeCount:  len(ids),
		EmployeeIDs:    ids,
		NextEmployeeID: next,
	}
}

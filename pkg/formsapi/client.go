package formsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"assessform-client/internal/apperror"
	"assessform-client/internal/dto"
)

// Client is the remote questionnaire/response/upload collaborator. It issues
// single requests and classifies failures; it never retries.
type Client interface {
	FormConfig(ctx context.Context, formType string) ([]dto.QuestionDefinition, error)
	CompanyStatus(ctx context.Context, companyID string) (*dto.CompanyStatusResponse, error)
	Employee(ctx context.Context, companyID string, employeeID int) (*dto.EmployeeLookupResponse, error)
	Company(ctx context.Context, companyID string) (*dto.CompanyLookupResponse, error)
	SaveResponses(ctx context.Context, req *dto.SaveResponseRequest) (*dto.SaveResponseResult, error)
	PresignUpload(ctx context.Context, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error)
	UploadPresigned(ctx context.Context, uploadURL, mimeType string, data []byte) error
	LegacyUpload(ctx context.Context, companyID, questionID, fileName, mimeType string, data []byte) (*dto.LegacyUploadResponse, error)
}

type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

var _ Client = &HTTPClient{}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPClient) FormConfig(ctx context.Context, formType string) ([]dto.QuestionDefinition, error) {
	var out []dto.QuestionDefinition
	if err := c.getJSON(ctx, "/config/"+url.PathEscape(formType), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CompanyStatus(ctx context.Context, companyID string) (*dto.CompanyStatusResponse, error) {
	params := url.Values{}
	params.Add("companyId", companyID)

	var out dto.CompanyStatusResponse
	if err := c.getJSON(ctx, "/responses", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Employee(ctx context.Context, companyID string, employeeID int) (*dto.EmployeeLookupResponse, error) {
	params := url.Values{}
	params.Add("action", "getEmployee")
	params.Add("companyId", companyID)
	params.Add("employeeId", fmt.Sprintf("%d", employeeID))

	var out dto.EmployeeLookupResponse
	if err := c.getJSON(ctx, "/responses", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Company(ctx context.Context, companyID string) (*dto.CompanyLookupResponse, error) {
	params := url.Values{}
	params.Add("action", "getCompany")
	params.Add("companyId", companyID)

	var out dto.CompanyLookupResponse
	if err := c.getJSON(ctx, "/responses", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SaveResponses(ctx context.Context, req *dto.SaveResponseRequest) (*dto.SaveResponseResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindServerRejected, "marshal save request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/responses", bytes.NewBuffer(payload))
	if err != nil {
		return nil, apperror.Wrap(apperror.KindServerRejected, "create save request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindNetworkUnavailable, "save responses", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindNetworkUnavailable, "read save response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifySaveFailure(resp.StatusCode, body)
	}

	var out dto.SaveResponseResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperror.Wrap(apperror.KindServerRejected, "unmarshal save response", err)
	}
	return &out, nil
}

func (c *HTTPClient) PresignUpload(ctx context.Context, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error) {
	var out dto.PresignUploadResponse
	if err := c.postJSON(ctx, "/uploads/presign", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UploadPresigned(ctx context.Context, uploadURL, mimeType string, data []byte) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return apperror.Wrap(apperror.KindServerRejected, "create presigned upload request", err)
	}
	httpReq.Header.Set("Content-Type", mimeType)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return apperror.Wrap(apperror.KindNetworkUnavailable, "presigned upload", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(resp.StatusCode, "presigned upload")
	}
	return nil
}

func (c *HTTPClient) LegacyUpload(ctx context.Context, companyID, questionID, fileName, mimeType string, data []byte) (*dto.LegacyUploadResponse, error) {
	params := url.Values{}
	params.Add("companyId", companyID)
	params.Add("questionId", questionID)
	params.Add("fileName", fileName)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/uploads/legacy?"+params.Encode(), bytes.NewReader(data))
	if err != nil {
		return nil, apperror.Wrap(apperror.KindServerRejected, "create legacy upload request", err)
	}
	httpReq.Header.Set("Content-Type", mimeType)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindNetworkUnavailable, "legacy upload", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindNetworkUnavailable, "read legacy upload response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(resp.StatusCode, "legacy upload")
	}

	var out dto.LegacyUploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperror.Wrap(apperror.KindServerRejected, "unmarshal legacy upload response", err)
	}
	return &out, nil
}

// --- helpers ---

func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	target := c.BaseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return apperror.Wrap(apperror.KindServerRejected, "create request", err)
	}

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return apperror.Wrap(apperror.KindNetworkUnavailable, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Wrap(apperror.KindNetworkUnavailable, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(resp.StatusCode, path)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperror.Wrap(apperror.KindServerRejected, "unmarshal response", err)
	}
	return nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return apperror.Wrap(apperror.KindServerRejected, "marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return apperror.Wrap(apperror.KindServerRejected, "create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return apperror.Wrap(apperror.KindNetworkUnavailable, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Wrap(apperror.KindNetworkUnavailable, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(resp.StatusCode, path)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperror.Wrap(apperror.KindServerRejected, "unmarshal response", err)
	}
	return nil
}

// classifySaveFailure inspects the error payload of a failed save. A message
// signalling the company form was finalized maps to AlreadyCompleted so the
// caller can surface it instead of treating it as a transport fault.
func classifySaveFailure(status int, body []byte) error {
	var errResp dto.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if strings.Contains(strings.ToLower(errResp.Error), "already completed") {
			return apperror.New(apperror.KindAlreadyCompleted, errResp.Error)
		}
		if errResp.Error != "" {
			if status >= 500 {
				return apperror.New(apperror.KindServiceUnavailable, errResp.Error)
			}
			return apperror.New(apperror.KindServerRejected, errResp.Error)
		}
	}
	return classifyStatus(status, "save responses")
}

func classifyStatus(status int, op string) error {
	if status >= 500 {
		return apperror.Newf(apperror.KindServiceUnavailable, "%s: status %d", op, status)
	}
	return apperror.Newf(apperror.KindServerRejected, "%s: status %d", op, status)
}

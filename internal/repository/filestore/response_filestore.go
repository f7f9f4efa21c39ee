package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"assessform-client/internal/apperror"
	"assessform-client/internal/dto"
)

// ResponseFileStore persists questionnaire records as JSON files under a data
// directory, one folder per company, mirroring the layout of the original
// bucket-backed deployment: {companyId}/company.json and
// {companyId}/employee_{id}.json.
type ResponseFileStore struct {
	dir string
}

type CompanyRecord struct {
	CompanyID            string                      `json:"companyId"`
	FormType             string                      `json:"formType"`
	Timestamp            string                      `json:"timestamp"`
	LastModified         string                      `json:"lastModified"`
	Responses            map[string]string           `json:"responses"`
	CompletionPercentage int                         `json:"completionPercentage"`
	InProgress           bool                        `json:"inProgress"`
	ExplicitlyCompleted  bool                        `json:"explicitlyCompleted"`
	FileUploads          map[string]dto.FileMetadata `json:"fileUploads,omitempty"`
}

type EmployeeRecord struct {
	CompanyID    string                      `json:"companyId"`
	EmployeeID   int                         `json:"employeeId"`
	FormType     string                      `json:"formType"`
	Timestamp    string                      `json:"timestamp"`
	LastModified string                      `json:"lastModified"`
	Responses    map[string]string           `json:"responses"`
	FileUploads  map[string]dto.FileMetadata `json:"fileUploads,omitempty"`
}

type UploadMetadata struct {
	UploadID        string `json:"uploadId"`
	CompanyID       string `json:"companyId"`
	EmployeeID      *int   `json:"employeeId"`
	QuestionID      string `json:"questionId"`
	FileName        string `json:"fileName"`
	FileSize        int64  `json:"fileSize"`
	FileType        string `json:"fileType"`
	StorageKey      string `json:"s3Key"`
	UploadTimestamp string `json:"uploadTimestamp"`
	FormType        string `json:"formType"`
}

func NewResponseFileStore(dir string) *ResponseFileStore {
	return &ResponseFileStore{dir: dir}
}

func (s *ResponseFileStore) LoadCompany(companyID string) (*CompanyRecord, bool, error) {
	var rec CompanyRecord
	found, err := s.readJSON(filepath.Join(companyID, "company.json"), &rec)
	if err != nil || !found {
		return nil, found, err
	}
	return &rec, true, nil
}

func (s *ResponseFileStore) SaveCompany(rec *CompanyRecord) error {
	return s.writeJSON(filepath.Join(rec.CompanyID, "company.json"), rec)
}

func (s *ResponseFileStore) LoadEmployee(companyID string, employeeID int) (*EmployeeRecord, bool, error) {
	var rec EmployeeRecord
	found, err := s.readJSON(filepath.Join(companyID, employeeFileName(employeeID)), &rec)
	if err != nil || !found {
		return nil, found, err
	}
	return &rec, true, nil
}

func (s *ResponseFileStore) SaveEmployee(rec *EmployeeRecord) error {
	return s.writeJSON(filepath.Join(rec.CompanyID, employeeFileName(rec.EmployeeID)), rec)
}

// ListEmployeeIDs returns the sorted ids parsed from employee_{id}.json file
// names; entries that do not parse are skipped.
func (s *ResponseFileStore) ListEmployeeIDs(companyID string) ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, companyID))
	if err != nil {
		if os.IsNotExist(err) {
			return []int{}, nil
		}
		return nil, err
	}

	ids := make([]int, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "employee_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		raw := strings.TrimSuffix(strings.TrimPrefix(name, "employee_"), ".json")
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// NextEmployeeID is max(ids)+1, or 0 when the company has no employees yet.
func (s *ResponseFileStore) NextEmployeeID(companyID string) (int, error) {
	ids, err := s.ListEmployeeIDs(companyID)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[len(ids)-1] + 1, nil
}

func (s *ResponseFileStore) SaveUploadMetadata(entry *UploadMetadata) error {
	key := filepath.Join("uploads", "metadata", entry.CompanyID, fmt.Sprintf("upload-%s.json", entry.UploadID))
	return s.writeJSON(key, entry)
}

// WriteObject stores raw upload bytes under the given storage key. Keys are
// client-supplied, so anything resolving outside the data directory is
// rejected.
func (s *ResponseFileStore) WriteObject(key string, data []byte) error {
	rel := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return apperror.Newf(apperror.KindInvalidAttachment, "storage key %q escapes the data directory", key)
	}

	path := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *ResponseFileStore) readJSON(rel string, out any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, rel))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ResponseFileStore) writeJSON(rel string, in any) error {
	path := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func employeeFileName(id int) string {
	return fmt.Sprintf("employee_%d.json", id)
}

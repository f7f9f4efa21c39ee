package dto

type SaveResponseRequest struct {
	CompanyID     string            `json:"companyId" validate:"required"`
	FormType      string            `json:"formType" validate:"required,oneof=company employee"`
	Responses     map[string]string `json:"responses" validate:"required"`
	EmployeeID    *int              `json:"employeeId,omitempty"`
	IsNewEmployee bool              `json:"isNewEmployee,omitempty"`
	FileMetadata  *FileMetadata     `json:"fileMetadata,omitempty"`

	// ExplicitlyCompleted finalizes the company form. Later company saves are
	// rejected with an AlreadyCompleted conflict.
	ExplicitlyCompleted bool `json:"explicitlyCompleted,omitempty"`
}

// FileMetadata mirrors the upload registry entry the responses service keeps
// per question. The storage key field is named s3Key on the wire for
// compatibility with the original bucket-backed deployment.
type FileMetadata struct {
	QuestionID string `json:"questionId"`
	FileName   string `json:"fileName"`
	FileSize   int64  `json:"fileSize"`
	FileType   string `json:"fileType"`
	StorageKey string `json:"s3Key"`
	Tier       string `json:"tier,omitempty"`
}

type SaveResponseResult struct {
	Message              string `json:"message"`
	Filename             string `json:"filename,omitempty"`
	EmployeeID           *int   `json:"employeeId,omitempty"`
	CompletionPercentage int    `json:"completionPercentage,omitempty"`
	InProgress           bool   `json:"inProgress,omitempty"`
	ExplicitlyCompleted  bool   `json:"explicitlyCompleted,omitempty"`
}

type CompanyStatusResponse struct {
	CompanyCompleted     bool    `json:"companyCompleted"`
	CompanyInProgress    bool    `json:"companyInProgress"`
	CompletionPercentage int     `json:"completionPercentage"`
	LastModified         *string `json:"lastModified"`
	EmployeeCount        int     `json:"employeeCount"`
	EmployeeIDs          []int   `json:"employeeIds"`
	NextEmployeeID       int     `json:"nextEmployeeId"`
}

type EmployeeLookupResponse struct {
	Found        bool              `json:"found"`
	Responses    map[string]string `json:"responses,omitempty"`
	LastModified *string           `json:"lastModified,omitempty"`
	Message      string            `json:"message,omitempty"`
}

type CompanyLookupResponse struct {
	Found                bool              `json:"found"`
	Responses            map[string]string `json:"responses,omitempty"`
	CompletionPercentage int               `json:"completionPercentage,omitempty"`
	InProgress           bool              `json:"inProgress,omitempty"`
	ExplicitlyCompleted  bool              `json:"explicitlyCompleted,omitempty"`
	LastModified         *string           `json:"lastModified,omitempty"`
	Message              string            `json:"message,omitempty"`
}

type QuestionDefinition struct {
	QuestionID          string `json:"QuestionID"`
	Question            string `json:"Question"`
	QuestionType        string `json:"QuestionType"`
	QuestionTypeDetails string `json:"QuestionTypeDetails"`
	Required            bool   `json:"Required"`
	Section             string `json:"Section"`
	QuestionOrder       int    `json:"QuestionOrder"`
	AllowFileUpload     bool   `json:"AllowFileUpload"`
	HelpText            string `json:"HelpText"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

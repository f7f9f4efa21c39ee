package dto

type PresignUploadRequest struct {
	CompanyID  string `json:"companyId" validate:"required"`
	QuestionID string `json:"questionId" validate:"required"`
	FileName   string `json:"fileName" validate:"required"`
	FileSize   int64  `json:"fileSize" validate:"required,gt=0"`
	FileType   string `json:"fileType" validate:"required"`
}

type PresignUploadResponse struct {
	UploadURL  string `json:"uploadUrl"`
	StorageKey string `json:"storageKey"`
	ExpiresIn  int    `json:"expiresIn"`
}

type LegacyUploadResponse struct {
	Message  string `json:"message"`
	FileName string `json:"file_name,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

package service

import (
	"context"
	"sync"
	"time"

	"assessform-client/internal/apperror"
	"assessform-client/internal/dto"
	"assessform-client/internal/entity"
	"assessform-client/internal/pkg/logger"
	"assessform-client/pkg/formsapi"
)

const (
	savedRevertDelay = 2 * time.Second
	errorRevertDelay = 5 * time.Second
)

type IResponseService interface {
	// ConfigureForm switches the active tab: the record map is cleared and
	// the question total for the completion ratio is replaced.
	ConfigureForm(formType string, questions []entity.Question)

	// SetAnswer merges the answer into the record optimistically and asks
	// the collaborator to persist the merged record. On the first successful
	// save of a New session the server-assigned identity is published
	// exactly once. There is no automatic retry on failure.
	//
	// An AlreadyCompleted rejection leaves the optimistic local answer in
	// place (local drafting) with SaveStatus Error.
	SetAnswer(ctx context.Context, questionID, value string, attachment *entity.AttachmentDescriptor) (*dto.SaveResponseResult, error)

	Hydrate(values map[string]string)
	Clear()
	Records() entity.ResponseRecord
	SaveStatus() entity.SaveStatus
	CompletionRatio() float64
}

type responseService struct {
	mu             sync.Mutex
	formType       string
	totalQuestions int
	records        entity.ResponseRecord
	saveStatus     entity.SaveStatus
	statusGen      int

	savedRevert time.Duration
	errorRevert time.Duration

	client        formsapi.Client
	session       ISessionService
	companyStatus ICompanyStatusService
	logger        logger.ILogger
}

func NewResponseService(
	client formsapi.Client,
	session ISessionService,
	companyStatus ICompanyStatusService,
	logger logger.ILogger,
) IResponseService {
	return &responseService{
		formType:      entity.FormTypeCompany,
		records:       make(entity.ResponseRecord),
		saveStatus:    entity.SaveStatusIdle,
		savedRevert:   savedRevertDelay,
		errorRevert:   errorRevertDelay,
		client:        client,
		session:       session,
		companyStatus: companyStatus,
		logger:        logger,
	}
}

func (s *responseService) ConfigureForm(formType string, questions []entity.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formType = formType
	s.totalQuestions = len(questions)
	s.records = make(entity.ResponseRecord)
	s.setStatusLocked(entity.SaveStatusIdle)
}

func (s *responseService) SetAnswer(ctx context.Context, questionID, value string, attachment *entity.AttachmentDescriptor) (*dto.SaveResponseResult, error) {
	if err := s.session.EnsureReady(); err != nil {
		return nil, err
	}

	epoch := s.session.Epoch()
	companyID := s.session.CompanyID()
	sess, _ := s.session.Session()

	s.mu.Lock()
	s.records[questionID] = entity.Answer{Value: value, Attachment: attachment}
	s.setStatusLocked(entity.SaveStatusSaving)
	req := s.buildSaveRequestLocked(companyID, sess, questionID, attachment)
	s.mu.Unlock()

	res, err := s.client.SaveResponses(ctx, req)

	// Completion fencing: a reset while the call was outstanding supersedes
	// this save, and the store it wrote to no longer exists.
	if s.session.Epoch() != epoch {
		s.logger.Info("response", "discarding stale save completion", map[string]interface{}{
			"companyId":  companyID,
			"questionId": questionID,
		})
		return nil, apperror.New(apperror.KindSessionNotReady, "session superseded while saving")
	}

	if err != nil {
		s.mu.Lock()
		s.setStatusLocked(entity.SaveStatusError)
		s.scheduleRevertLocked(s.statusGen, s.errorRevert)
		s.mu.Unlock()
		return nil, err
	}

	if res.EmployeeID != nil {
		if s.session.PublishIdentity(epoch, *res.EmployeeID) {
			// Roster and nextEmployeeId changed server-side.
			s.companyStatus.Refresh(ctx, companyID)
		} else {
			s.logger.Info("response", "identity already pinned, discarding server-proposed id", map[string]interface{}{
				"proposedId": *res.EmployeeID,
			})
		}
	}

	s.mu.Lock()
	s.setStatusLocked(entity.SaveStatusSaved)
	s.scheduleRevertLocked(s.statusGen, s.savedRevert)
	s.mu.Unlock()

	return res, nil
}

func (s *responseService) Hydrate(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(entity.ResponseRecord, len(values))
	for questionID, value := range values {
		s.records[questionID] = entity.Answer{Value: value}
	}
	s.setStatusLocked(entity.SaveStatusIdle)
}

func (s *responseService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(entity.ResponseRecord)
	s.setStatusLocked(entity.SaveStatusIdle)
}

func (s *responseService) Records() entity.ResponseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Clone()
}

func (s *responseService) SaveStatus() entity.SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveStatus
}

func (s *responseService) CompletionRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totalQuestions == 0 {
		return 0
	}
	answered := 0
	for _, answer := range s.records {
		if answer.Answered() {
			answered++
		}
	}
	return float64(answered) / float64(s.totalQuestions)
}

func (s *responseService) buildSaveRequestLocked(companyID string, sess entity.EmployeeSession, questionID string, attachment *entity.AttachmentDescriptor) *dto.SaveResponseRequest {
	req := &dto.SaveResponseRequest{
		CompanyID: companyID,
		FormType:  s.formType,
		Responses: s.records.Values(),
	}

	if s.formType == entity.FormTypeEmployee {
		if sess.HasIdentity() {
			id := sess.EmployeeID
			req.EmployeeID = &id
		} else if sess.Mode == entity.ModeNew {
			req.IsNewEmployee = true
		}
	}

	if attachment != nil {
		req.FileMetadata = &dto.FileMetadata{
			QuestionID: questionID,
			FileName:   attachment.FileName,
			FileSize:   attachment.FileSize,
			FileType:   attachment.MimeType,
			StorageKey: attachment.StorageKey,
			Tier:       string(attachment.Tier),
		}
	}
	return req
}

func (s *responseService) setStatusLocked(status entity.SaveStatus) {
	s.saveStatus = status
	s.statusGen++
}

// scheduleRevertLocked flips the transient status back to Idle unless a newer
// status change has happened in the meantime.
func (s *responseService) scheduleRevertLocked(gen int, delay time.Duration) {
	time.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.statusGen == gen {
			s.saveStatus = entity.SaveStatusIdle
		}
	})
}

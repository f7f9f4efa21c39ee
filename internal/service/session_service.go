package service

import (
	"context"
	"sync"

	"assessform-client/internal/apperror"
	"assessform-client/internal/entity"
	"assessform-client/internal/pkg/logger"
	"assessform-client/pkg/formsapi"
)

// validSessionTransitions is the exhaustive transition table. Reset bypasses
// it (a reset force-transitions to Uninitialized from any state).
var validSessionTransitions = map[entity.SessionState][]entity.SessionState{
	entity.StateUninitialized:         {entity.StateAwaitingModeSelection},
	entity.StateAwaitingModeSelection: {entity.StateAssigningIdentity, entity.StateValidatingReturningID},
	entity.StateAssigningIdentity:     {entity.StateReady, entity.StateError},
	entity.StateValidatingReturningID: {entity.StateReady, entity.StateError},
	entity.StateReady:                 {},
	entity.StateError:                 {entity.StateAwaitingModeSelection},
}

type ISessionService interface {
	// SetCompany resets the controller, invalidates the cached company
	// snapshot, refreshes it, and leaves the controller awaiting a mode
	// selection for the new company.
	SetCompany(ctx context.Context, companyID string)
	CompanyID() string
	State() entity.SessionState
	Session() (entity.EmployeeSession, bool)
	Epoch() uint64

	SelectNewMode() error
	SelectReturningMode(ctx context.Context, candidateID int) error
	Reset()

	// EnsureReady gates response and upload activity. Outside Ready it fails
	// fast with SessionNotReady; nothing is queued or retried.
	EnsureReady() error

	// PublishIdentity pins the server-assigned identity for a New session.
	// First writer wins: it reports false when the epoch is stale or the
	// identity is already set, and the caller must discard the proposed id.
	PublishIdentity(epoch uint64, employeeID int) bool

	SetResponseStore(store IResponseService)
}

type sessionService struct {
	mu        sync.Mutex
	state     entity.SessionState
	session   *entity.EmployeeSession
	companyID string
	epoch     uint64

	client        formsapi.Client
	companyStatus ICompanyStatusService
	store         IResponseService
	logger        logger.ILogger
}

func NewSessionService(
	client formsapi.Client,
	companyStatus ICompanyStatusService,
	logger logger.ILogger,
) ISessionService {
	return &sessionService{
		state:         entity.StateUninitialized,
		client:        client,
		companyStatus: companyStatus,
		logger:        logger,
	}
}

// SetResponseStore wires the store after construction; the store also depends
// on this service, so one side has to be attached late.
func (s *sessionService) SetResponseStore(store IResponseService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
}

func (s *sessionService) SetCompany(ctx context.Context, companyID string) {
	s.Reset()

	s.mu.Lock()
	s.companyID = companyID
	s.transitionLocked(entity.StateAwaitingModeSelection)
	s.mu.Unlock()

	s.companyStatus.Invalidate(companyID)
	s.companyStatus.Refresh(ctx, companyID)
}

func (s *sessionService) CompanyID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.companyID
}

func (s *sessionService) State() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *sessionService) Session() (entity.EmployeeSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return entity.EmployeeSession{}, false
	}
	return *s.session, true
}

func (s *sessionService) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

func (s *sessionService) SelectNewMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != entity.StateAwaitingModeSelection {
		return apperror.Newf(apperror.KindSessionNotReady, "cannot select mode in state %s", s.state)
	}

	// Identity assignment is deferred to the first save so an abandoned
	// session never consumes an id. No network call happens here.
	s.transitionLocked(entity.StateAssigningIdentity)
	s.session = &entity.EmployeeSession{
		Mode:       entity.ModeNew,
		EmployeeID: entity.EmployeeIDUnassigned,
		Ready:      true,
	}
	s.transitionLocked(entity.StateReady)
	return nil
}

func (s *sessionService) SelectReturningMode(ctx context.Context, candidateID int) error {
	s.mu.Lock()

	if s.state != entity.StateAwaitingModeSelection {
		s.mu.Unlock()
		return apperror.Newf(apperror.KindSessionNotReady, "cannot select mode in state %s", s.state)
	}

	if candidateID < 0 {
		s.mu.Unlock()
		return apperror.Newf(apperror.KindUnknownIdentity, "employee id %d is not a valid identity", candidateID)
	}

	companyID := s.companyID

	// A known, non-empty roster rejects unknown ids without a network call.
	// An empty roster deliberately falls through to the remote lookup.
	if status, found := s.companyStatus.Current(companyID); found && len(status.EmployeeIDs) > 0 {
		if !status.HasEmployee(candidateID) {
			s.mu.Unlock()
			return apperror.Newf(apperror.KindUnknownIdentity, "employee id %d is not on the roster", candidateID)
		}
	}

	s.transitionLocked(entity.StateValidatingReturningID)
	epoch := s.epoch
	s.mu.Unlock()

	res, err := s.client.Employee(ctx, companyID, candidateID)

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		s.logger.Info("session", "discarding stale identity validation", map[string]interface{}{
			"companyId":  companyID,
			"employeeId": candidateID,
		})
		return apperror.New(apperror.KindSessionNotReady, "session superseded while validating identity")
	}

	if err != nil {
		s.failValidationLocked()
		s.mu.Unlock()
		return err
	}

	if !res.Found {
		s.failValidationLocked()
		s.mu.Unlock()
		return apperror.Newf(apperror.KindUnknownIdentity, "no employee found with id %d", candidateID)
	}

	s.session = &entity.EmployeeSession{
		Mode:       entity.ModeReturning,
		EmployeeID: candidateID,
		Ready:      true,
	}
	s.transitionLocked(entity.StateReady)
	store := s.store
	s.mu.Unlock()

	if store != nil {
		store.Hydrate(res.Responses)
	}

	s.logger.Info("session", "returning session restored", map[string]interface{}{
		"companyId":  companyID,
		"employeeId": candidateID,
	})
	return nil
}

func (s *sessionService) Reset() {
	s.mu.Lock()
	old := s.state
	s.epoch++
	s.session = nil
	s.state = entity.StateUninitialized
	store := s.store
	epoch := s.epoch
	s.mu.Unlock()

	if store != nil {
		store.Clear()
	}

	s.logger.Info("session", "session reset", map[string]interface{}{
		"fromState": string(old),
		"epoch":     epoch,
	})
}

func (s *sessionService) EnsureReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != entity.StateReady || s.session == nil {
		return apperror.Newf(apperror.KindSessionNotReady, "session state is %s", s.state)
	}
	return nil
}

func (s *sessionService) PublishIdentity(epoch uint64, employeeID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		s.logger.Info("session", "discarding identity from stale epoch", map[string]interface{}{
			"employeeId": employeeID,
		})
		return false
	}
	if s.session == nil || s.session.Mode != entity.ModeNew || s.session.HasIdentity() {
		return false
	}

	s.session.EmployeeID = employeeID
	s.logger.Info("session", "identity assigned", map[string]interface{}{
		"companyId":  s.companyID,
		"employeeId": employeeID,
	})
	return true
}

// failValidationLocked walks Error back to AwaitingModeSelection with no
// partial session state retained.
func (s *sessionService) failValidationLocked() {
	s.transitionLocked(entity.StateError)
	s.session = nil
	s.transitionLocked(entity.StateAwaitingModeSelection)
}

func (s *sessionService) transitionLocked(to entity.SessionState) {
	from := s.state
	allowed := false
	for _, candidate := range validSessionTransitions[from] {
		if candidate == to {
			allowed = true
			break
		}
	}
	if !allowed {
		// The table is exhaustive for every caller in this package; hitting
		// this path is a programming error, not a runtime condition.
		s.logger.Error("session", "invalid state transition", map[string]interface{}{
			"from": string(from),
			"to":   string(to),
		})
		return
	}

	s.state = to
	s.logger.Debug("session", "state transition", map[string]interface{}{
		"from": string(from),
		"to":   string(to),
	})
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"healthagentapi/models"
	"healthagentapi/pkg/logger"
	"healthagentapi/pkg/metrics"
	"healthagentapi/repository"
	"healthagentapi/services/dto"
	"healthagentapi/utils"
	"healthagentapi/validation"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PolicyService provides business logic for creating and listing policies.
// All methods accept context.Context for cancellation and timeout control.
type PolicyService interface {
	// Create validates req and stores it as a new policy.
	// Failures are *ValidationError, ErrUnauthorized, ErrConflict or *InternalError.
	Create(ctx context.Context, req dto.CreatePolicyRequest) (*models.Policy, error)

	// List returns every stored policy, most recently created first.
	// The slice is empty, never nil, when nothing is stored.
	List(ctx context.Context) ([]models.Policy, error)
}

type policyService struct {
	baseRepo   repository.BaseRepository
	policyRepo repository.PolicyRepository
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewPolicyService creates a policy service on the global database connection.
func NewPolicyService(m *metrics.Metrics) PolicyService {
	return &policyService{
		baseRepo:   repository.NewBaseRepository(),
		policyRepo: repository.NewPolicyRepository(),
		metrics:    m,
		now:        time.Now,
	}
}

// NewPolicyServiceWithDeps creates a service instance with injected dependencies.
// now supplies "today" for the date rules; nil means time.Now.
func NewPolicyServiceWithDeps(
	baseRepo repository.BaseRepository,
	policyRepo repository.PolicyRepository,
	m *metrics.Metrics,
	now func() time.Time,
) PolicyService {
	if now == nil {
		now = time.Now
	}
	return &policyService{
		baseRepo:   baseRepo,
		policyRepo: policyRepo,
		metrics:    m,
		now:        now,
	}
}

// Create runs the checks in order: presence, agent, field values, PAN
// pre-check, then the insert. The unique index on pan_number decides
// conflicts between concurrent creates; the pre-check only avoids a
// pointless transaction.
func (s *policyService) Create(ctx context.Context, req dto.CreatePolicyRequest) (*models.Policy, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveCreateLatency(time.Since(start)) }()

	if err := utils.ValidateStruct(&req); err != nil {
		missing := utils.MissingFields(err)
		if len(missing) == 0 {
			logger.Errorf("Unexpected validator failure: %v", err)
			s.metrics.IncrementCreate(metrics.ResultError)
			return nil, &InternalError{Op: "validate request", Err: err}
		}
		logger.Warnf("Create policy rejected, missing fields: %v", missing)
		s.metrics.IncrementCreate(metrics.ResultInvalid)
		return nil, &ValidationError{Message: MsgMissingFields, Fields: missing}
	}

	if strings.TrimSpace(req.AgentID) == "" {
		logger.Warnf("Create policy rejected: no agent id")
		s.metrics.IncrementCreate(metrics.ResultUnauthorized)
		return nil, ErrUnauthorized
	}

	policy, fieldErrs := s.toPolicy(req)
	if len(fieldErrs) > 0 {
		logger.Warnf("Create policy rejected for agent=%s: %s", req.AgentID, fieldErrs.Error())
		s.metrics.IncrementCreate(metrics.ResultInvalid)
		return nil, &ValidationError{
			Message: MsgInvalidFields,
			Fields:  fieldErrs.Fields(),
			Details: fieldErrs,
		}
	}

	exists, err := s.policyRepo.ExistsByPAN(ctx, nil, policy.PanNumber)
	if err != nil {
		logger.Errorf("Failed to check PAN uniqueness for agent=%s: %v", policy.AgentID, err)
		s.metrics.IncrementCreate(metrics.ResultError)
		return nil, &InternalError{Op: "check pan", Err: err}
	}
	if exists {
		logger.Warnf("Create policy rejected for agent=%s: PAN already stored", policy.AgentID)
		s.metrics.IncrementCreate(metrics.ResultConflict)
		return nil, ErrConflict
	}

	// past this point the request is valid; a client disconnect must not abort the write
	writeCtx := context.WithoutCancel(ctx)
	if err := s.insert(writeCtx, policy); err != nil {
		if errors.Is(err, ErrConflict) {
			logger.Warnf("Create policy lost PAN race for agent=%s", policy.AgentID)
			s.metrics.IncrementCreate(metrics.ResultConflict)
			return nil, err
		}
		logger.Errorf("Failed to store policy for agent=%s: %v", policy.AgentID, err)
		s.metrics.IncrementCreate(metrics.ResultError)
		return nil, &InternalError{Op: "insert policy", Err: err}
	}

	logger.Infof("Created policy id=%d for agent=%s", policy.ID, policy.AgentID)
	s.metrics.IncrementCreate(metrics.ResultCreated)
	return policy, nil
}

func (s *policyService) insert(ctx context.Context, policy *models.Policy) error {
	tx := s.baseRepo.Begin(ctx)
	if tx.Error != nil {
		return tx.Error
	}

	if err := s.policyRepo.Create(ctx, tx, policy); err != nil {
		tx.Rollback()
		if errors.Is(err, repository.ErrDuplicatePAN) {
			return ErrConflict
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		if repository.IsDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// toPolicy re-validates req against the server rules and builds the record to store.
func (s *policyService) toPolicy(req dto.CreatePolicyRequest) (*models.Policy, validation.Errors) {
	sub := validation.Submission{
		CustomerName:      req.CustomerName,
		Gender:            req.Gender,
		Mobile:            req.Mobile,
		Email:             req.Email,
		Address:           req.Address,
		PlanType:          req.PlanType,
		PanNumber:         validation.NormalizePAN(req.PanNumber),
		MembersCount:      req.MembersCount,
		MedicalConditions: req.MedicalConditions,
		NomineeName:       req.NomineeName,
		Premium:           strings.TrimSpace(string(req.Premium)),
	}

	badDates := validation.Errors{}
	if d, err := validation.ParseDate(req.Dob); err == nil {
		sub.Dob = &d
	} else {
		badDates[validation.FieldDob] = "Invalid date (YYYY-MM-DD)."
	}
	if d, err := validation.ParseDate(req.PolicyStartDate); err == nil {
		sub.PolicyStartDate = &d
	} else {
		badDates[validation.FieldPolicyStartDate] = "Invalid date (YYYY-MM-DD)."
	}

	errs := validation.ServerRules.Check(sub, s.now())
	for field, msg := range badDates {
		errs[field] = msg
	}
	if len(errs) > 0 {
		return nil, errs
	}

	premium, err := decimal.NewFromString(sub.Premium)
	if err != nil {
		// unreachable once the premium rule has passed
		return nil, validation.Errors{validation.FieldPremium: "Must be > 0."}
	}

	return &models.Policy{
		CustomerName:      sub.CustomerName,
		Dob:               datatypes.Date(*sub.Dob),
		Gender:            sub.Gender,
		Mobile:            sub.Mobile,
		Email:             sub.Email,
		Address:           sub.Address,
		PlanType:          sub.PlanType,
		PanNumber:         sub.PanNumber,
		MembersCount:      sub.MembersCount,
		MedicalConditions: sub.MedicalConditions == models.MedicalConditionsYes,
		NomineeName:       sub.NomineeName,
		Premium:           premium,
		PolicyStartDate:   datatypes.Date(*sub.PolicyStartDate),
		AgentID:           strings.TrimSpace(req.AgentID),
	}, nil
}

// List returns all policies ordered by id descending.
func (s *policyService) List(ctx context.Context) ([]models.Policy, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveListLatency(time.Since(start)) }()

	policies, err := s.policyRepo.GetAll(ctx, nil)
	if err != nil {
		logger.Errorf("Failed to list policies: %v", err)
		return nil, &InternalError{Op: "list policies", Err: err}
	}
	if policies == nil {
		policies = []models.Policy{}
	}

	logger.Debugf("Listed %d policies", len(policies))
	return policies, nil
}

package repository

import (
	"context"
	"errors"
	"strings"

	"healthagentapi/config"
	"healthagentapi/models"

	"gorm.io/gorm"
)

// ErrDuplicatePAN is returned when an insert violates the unique index on pan_number.
var ErrDuplicatePAN = errors.New("pan_number already exists")

// PolicyRepository provides data access operations for policy records.
// A nil tx runs the statement on the repository's own connection.
type PolicyRepository interface {
	Create(ctx context.Context, tx *gorm.DB, policy *models.Policy) error
	ExistsByPAN(ctx context.Context, tx *gorm.DB, pan string) (bool, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]models.Policy, error)
}

type policyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository creates a policy repository on the global database connection.
func NewPolicyRepository() PolicyRepository {
	return NewPolicyRepositoryWithDB(config.DB)
}

// NewPolicyRepositoryWithDB creates a policy repository on db.
func NewPolicyRepositoryWithDB(db *gorm.DB) PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create inserts policy and fills in its ID. The unique index on pan_number is
// the authoritative duplicate check; a violation is reported as ErrDuplicatePAN.
func (r *policyRepository) Create(ctx context.Context, tx *gorm.DB, policy *models.Policy) error {
	db := r.conn(ctx, tx)
	if err := db.Create(policy).Error; err != nil {
		if IsDuplicateKey(err) {
			return ErrDuplicatePAN
		}
		return err
	}
	return nil
}

func (r *policyRepository) ExistsByPAN(ctx context.Context, tx *gorm.DB, pan string) (bool, error) {
	db := r.conn(ctx, tx)
	var count int64
	if err := db.Model(&models.Policy{}).Where("pan_number = ?", pan).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAll returns every policy, most recently created first.
func (r *policyRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]models.Policy, error) {
	db := r.conn(ctx, tx)
	policies := []models.Policy{}
	if err := db.Order("id DESC").Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

// duplicateMessages covers drivers whose errors GORM does not translate.
var duplicateMessages = []string{
	"duplicate entry",            // mysql 1062
	"duplicate unique key",       // go-mysql-server
	"unique constraint failed",   // sqlite
	"violates unique constraint", // postgres 23505
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicatePAN) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range duplicateMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

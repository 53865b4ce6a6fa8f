package client

import (
	"context"
	"sync"

	"healthagentapi/models"
	"healthagentapi/pkg/logger"
)

// PolicyStore is a local cache of policies. It is not kept consistent with
// the server: the last ReplaceAll or Add wins.
type PolicyStore struct {
	mu       sync.RWMutex
	policies []models.Policy
}

// NewPolicyStore returns an empty store.
func NewPolicyStore() *PolicyStore {
	return &PolicyStore{policies: []models.Policy{}}
}

// ReplaceAll overwrites the cache, as after a full fetch.
func (s *PolicyStore) ReplaceAll(policies []models.Policy) {
	cp := make([]models.Policy, len(policies))
	copy(cp, policies)

	s.mu.Lock()
	s.policies = cp
	s.mu.Unlock()
}

// Add puts one policy at the front of the cache, as after a successful
// create, so the cache stays newest first like the server's list.
func (s *PolicyStore) Add(policy models.Policy) {
	s.mu.Lock()
	s.policies = append([]models.Policy{policy}, s.policies...)
	s.mu.Unlock()
}

// All returns a copy of the cached policies, newest first.
func (s *PolicyStore) All() []models.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]models.Policy, len(s.policies))
	copy(cp, s.policies)
	return cp
}

// Recent returns up to n policies from the front of the cache.
func (s *PolicyStore) Recent(n int) []models.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.policies) {
		n = len(s.policies)
	}
	if n < 0 {
		n = 0
	}
	cp := make([]models.Policy, n)
	copy(cp, s.policies[:n])
	return cp
}

// Sync replaces the store's contents with the server's list.
// On error the store is left unchanged.
func (c *Client) Sync(ctx context.Context, store *PolicyStore) error {
	policies, err := c.ListPolicies(ctx)
	if err != nil {
		return err
	}
	store.ReplaceAll(policies)
	return nil
}

// Submit creates form on the server, adds the result to the front of store and
// then refreshes store from the server. The create has already succeeded when
// the refresh runs, so a failed refresh is logged and leaves the added policy in place.
func (c *Client) Submit(ctx context.Context, store *PolicyStore, form Form) (*models.Policy, error) {
	policy, err := c.CreatePolicy(ctx, form)
	if err != nil {
		return nil, err
	}
	store.Add(*policy)
	if err := c.Sync(ctx, store); err != nil {
		logger.Warnf("Policy id=%d created but refreshing the list failed: %v", policy.ID, err)
	}
	return policy, nil
}

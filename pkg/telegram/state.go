package telegram

import (
	"sync"
	"time"
)

// ClearScope says what a pending /clear confirmation will remove.
type ClearScope string

const (
	ClearScopeAll   ClearScope = "all"
	ClearScopeDay   ClearScope = "day"
	ClearScopeRange ClearScope = "range"
)

// confirmationTTL bounds how long a destructive action stays pending. An
// unanswered confirmation silently expires back to idle.
const confirmationTTL = 2 * time.Minute

// PendingClear is a destructive action awaiting a yes/no reply.
type PendingClear struct {
	Scope     ClearScope
	Date      time.Time // day scope
	Start     time.Time // range scope
	End       time.Time
	ExpiresAt time.Time
}

// StateManager tracks per-user pending confirmations. Users are idle unless
// a /clear is awaiting their reply.
type StateManager struct {
	mu      sync.RWMutex
	pending map[int64]*PendingClear
}

// NewStateManager creates a new state manager
func NewStateManager() *StateManager {
	return &StateManager{
		pending: make(map[int64]*PendingClear),
	}
}

// Pending returns the user's unexpired pending action or nil.
func (sm *StateManager) Pending(userID int64) *PendingClear {
	sm.mu.RLock()
	p, exists := sm.pending[userID]
	sm.mu.RUnlock()

	if !exists {
		return nil
	}
	if time.Now().After(p.ExpiresAt) {
		sm.Clear(userID)
		return nil
	}

	return p
}

// SetPending stores a pending action for a user, stamping its expiry.
func (sm *StateManager) SetPending(userID int64, p *PendingClear) {
	p.ExpiresAt = time.Now().Add(confirmationTTL)

	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.pending[userID] = p
}

// Clear returns the user to idle.
func (sm *StateManager) Clear(userID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.pending, userID)
}

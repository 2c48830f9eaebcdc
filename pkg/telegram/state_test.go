package telegram

import (
	"testing"
	"time"
)

func TestStateManagerPending(t *testing.T) {
	sm := NewStateManager()

	if p := sm.Pending(1); p != nil {
		t.Fatalf("Pending() = %+v for idle user, want nil", p)
	}

	sm.SetPending(1, &PendingClear{Scope: ClearScopeAll})
	p := sm.Pending(1)
	if p == nil {
		t.Fatal("Pending() = nil after SetPending")
	}
	if p.Scope != ClearScopeAll {
		t.Errorf("Scope = %q, want %q", p.Scope, ClearScopeAll)
	}
	if p.ExpiresAt.IsZero() {
		t.Error("ExpiresAt not stamped")
	}

	// other users stay idle
	if p := sm.Pending(2); p != nil {
		t.Errorf("Pending() = %+v for another user, want nil", p)
	}

	sm.Clear(1)
	if p := sm.Pending(1); p != nil {
		t.Errorf("Pending() = %+v after Clear, want nil", p)
	}
}

func TestStateManagerExpiry(t *testing.T) {
	sm := NewStateManager()

	sm.SetPending(1, &PendingClear{Scope: ClearScopeDay, Date: time.Now()})

	// force the pending action past its TTL
	sm.mu.Lock()
	sm.pending[1].ExpiresAt = time.Now().Add(-time.Second)
	sm.mu.Unlock()

	if p := sm.Pending(1); p != nil {
		t.Fatalf("Pending() = %+v after expiry, want nil", p)
	}

	// expiry also removed the entry
	sm.mu.RLock()
	_, exists := sm.pending[1]
	sm.mu.RUnlock()
	if exists {
		t.Error("expired entry was not deleted")
	}
}

func TestStateManagerReplace(t *testing.T) {
	sm := NewStateManager()

	sm.SetPending(1, &PendingClear{Scope: ClearScopeAll})
	sm.SetPending(1, &PendingClear{Scope: ClearScopeDay, Date: time.Now()})

	p := sm.Pending(1)
	if p == nil {
		t.Fatal("Pending() = nil, want day scope")
	}
	if p.Scope != ClearScopeDay {
		t.Errorf("Scope = %q, want %q", p.Scope, ClearScopeDay)
	}
}

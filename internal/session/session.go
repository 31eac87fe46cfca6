// Package session holds the single process-wide "who is logged in" state.
// Only SetIdentity and ClearIdentity mutate it; everything else (header
// stamping, navigation gating, role-conditional rendering) observes it.
package session

import (
	"log"
	"strconv"
	"sync"

	"oficina-desk/internal/models"
)

// Identity is the authenticated staff identity returned by POST /login.
type Identity struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	UserID   int         `json:"id_usuario"`
}

// IsAdmin reports whether the identity may administer staff accounts.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdministrador
}

// CanManageCaixa reports whether the identity may view and edit the ledger.
func (i Identity) CanManageCaixa() bool {
	return i.Role == models.RoleAdministrador || i.Role == models.RoleGerente
}

// CanManageUsers reports whether the identity may open the staff admin
// page. Managers may only create employees; the server enforces that.
func (i Identity) CanManageUsers() bool {
	return i.Role == models.RoleAdministrador || i.Role == models.RoleGerente
}

// Manager owns the session identity for the lifetime of the process.
// Created once at startup, restored from the persisted session file, and
// torn down on logout or forced expiry.
type Manager struct {
	mu        sync.RWMutex
	identity  *Identity
	store     *fileStore
	observers []func(*Identity)
}

func NewManager(file, secret string) *Manager {
	return &Manager{store: newFileStore(file, secret)}
}

// Restore loads a previously persisted identity, if the session file
// exists and its signature checks out. Tampered or unreadable files are
// discarded and the user logs in again.
func (m *Manager) Restore() {
	id, err := m.store.load()
	if err != nil {
		log.Printf("[Session] Discarding persisted session: %v", err)
		m.store.clear()
		return
	}
	if id == nil {
		return
	}
	m.mu.Lock()
	m.identity = id
	m.mu.Unlock()
	log.Printf("[Session] Restored session for %s (%s)", id.Username, id.Role)
}

// Current returns the active identity, if any.
func (m *Manager) Current() (Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return Identity{}, false
	}
	return *m.identity, true
}

// SetIdentity installs a new identity after a successful login and
// persists it for the next start.
func (m *Manager) SetIdentity(id Identity) {
	m.mu.Lock()
	m.identity = &id
	observers := m.observers
	m.mu.Unlock()

	if err := m.store.save(id); err != nil {
		log.Printf("[Session] Failed to persist session: %v", err)
	}
	for _, fn := range observers {
		fn(&id)
	}
}

// ClearIdentity tears the session down, on logout or when the backend
// rejects the session.
func (m *Manager) ClearIdentity() {
	m.mu.Lock()
	m.identity = nil
	observers := m.observers
	m.mu.Unlock()

	m.store.clear()
	for _, fn := range observers {
		fn(nil)
	}
}

// OnChange registers an observer called with the new identity on login
// and with nil on logout. Register during startup, before serving.
func (m *Manager) OnChange(fn func(*Identity)) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// SessionHeaders implements httpclient.HeaderSource: the role and user-id
// headers the backend expects on every authenticated request.
func (m *Manager) SessionHeaders() map[string]string {
	id, ok := m.Current()
	if !ok {
		return nil
	}
	return map[string]string{
		"X-User-Role":     string(id.Role),
		"current-user-id": strconv.Itoa(id.UserID),
	}
}

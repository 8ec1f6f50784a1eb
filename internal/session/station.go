// Package session holds the state of the station tablet: who is logged in,
// which workflow is active and the request cart.
package session

import (
	"errors"
	"fmt"
	"sync"

	"station-request-api-server/internal/cart"
	"station-request-api-server/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotAuthenticated = errors.New("no active session")
	ErrUnknownWorkflow  = errors.New("workflow not assigned to this station")
)

// Station is the single session of one tablet. One identity is active at a
// time; all mutations go through its methods.
type Station struct {
	mu             sync.RWMutex
	accounts       []Account
	identity       *models.Identity
	sessionID      string
	activeWorkflow *models.Workflow
	cart           *cart.Cart
	onEnd          func(sessionID string)
}

// Snapshot is everything a client observes about the session.
type Snapshot struct {
	Identity       *models.Identity `json:"user"`
	ActiveWorkflow *models.Workflow `json:"activeWorkflow"`
	Cart           cart.Snapshot    `json:"cart"`
}

func NewStation(accounts []Account) *Station {
	return &Station{accounts: accounts, cart: cart.New()}
}

// Login checks the credentials. On success the identity becomes the
// station's identity and a fresh session id is issued; any previous
// session is discarded along with its workflow and cart. Login does not
// pick an active workflow. On failure nothing changes.
func (s *Station) Login(stationCode, password string) (models.Identity, string, bool) {
	user, ok := match(s.accounts, stationCode, password)
	if !ok {
		return models.Identity{}, "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity != nil {
		s.resetLocked()
	}
	s.identity = &user
	s.sessionID = uuid.New().String()
	return user, s.sessionID, true
}

// OnSessionEnd registers fn to be called with the id of every session that
// ends, by logout or by a login replacing it. fn runs under the station
// lock and must not call back into the station.
func (s *Station) OnSessionEnd(fn func(sessionID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnd = fn
}

// Logout clears identity, active workflow and the whole cart in one step.
func (s *Station) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// LogoutSession logs out only if sessionID is still the current session.
func (s *Station) LogoutSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked(sessionID) {
		return false
	}
	s.resetLocked()
	return true
}

func (s *Station) resetLocked() {
	ended := s.sessionID
	s.identity = nil
	s.sessionID = ""
	s.activeWorkflow = nil
	s.cart.ClearAll()
	if ended != "" && s.onEnd != nil {
		s.onEnd(ended)
	}
}

func (s *Station) activeLocked(sessionID string) bool {
	return s.identity != nil && sessionID != "" && s.sessionID == sessionID
}

func (s *Station) Identity() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

func (s *Station) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// SessionActive reports whether sessionID is the current session.
func (s *Station) SessionActive(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked(sessionID)
}

func (s *Station) ActiveWorkflow() (models.Workflow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeWorkflow == nil {
		return models.Workflow{}, false
	}
	return *s.activeWorkflow, true
}

// SetActiveWorkflow points the session at wf; nil clears the selection.
func (s *Station) SetActiveWorkflow(wf *models.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return ErrNotAuthenticated
	}
	return s.setWorkflowLocked(wf)
}

// SetSessionWorkflow is SetActiveWorkflow for sessionID only; it fails with
// ErrNotAuthenticated once that session has ended.
func (s *Station) SetSessionWorkflow(sessionID string, wf *models.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked(sessionID) {
		return ErrNotAuthenticated
	}
	return s.setWorkflowLocked(wf)
}

func (s *Station) setWorkflowLocked(wf *models.Workflow) error {
	if wf == nil {
		s.activeWorkflow = nil
		return nil
	}
	if _, ok := s.identity.Workflow(wf.ID); !ok {
		return fmt.Errorf("%s: %w", wf.ID, ErrUnknownWorkflow)
	}
	w := *wf
	s.activeWorkflow = &w
	return nil
}

// SelectWorkflow activates one of the identity's workflows by id.
func (s *Station) SelectWorkflow(id string) (models.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return models.Workflow{}, ErrNotAuthenticated
	}
	wf, ok := s.identity.Workflow(id)
	if !ok {
		return models.Workflow{}, fmt.Errorf("%s: %w", id, ErrUnknownWorkflow)
	}
	s.activeWorkflow = &wf
	return wf, nil
}

// WithCart runs fn against the cart of session sessionID. Logout cannot
// interleave with fn.
func (s *Station) WithCart(sessionID string, fn func(c *cart.Cart) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.activeLocked(sessionID) {
		return ErrNotAuthenticated
	}
	return fn(s.cart)
}

func (s *Station) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Cart: s.cart.Snapshot()}
	if s.identity != nil {
		id := *s.identity
		snap.Identity = &id
	}
	if s.activeWorkflow != nil {
		wf := *s.activeWorkflow
		snap.ActiveWorkflow = &wf
	}
	return snap
}

// StagingAreaIDs is the staging scope of the logged-in identity.
func (s *Station) StagingAreaIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return []string{}
	}
	return append([]string{}, s.identity.StagingAreaIDs...)
}

// Package session keeps per-conversation memory: recent turns, the active client and
// product, and mention counts used for summaries and suggestions.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// Defaults for conversation memory
const (
	DefaultMaxTurns = 10
	historyTurns    = 5
	topMentions     = 3
)

// TurnContext is what a turn resolved, used to update mention counts.
type TurnContext struct {
	Intent   types.Intent
	Clients  []*types.Client
	Products []*types.Product
}

// session is one conversation. turnMu serializes whole turns; mu guards the fields below it.
type session struct {
	mu     sync.Mutex
	turnMu sync.Mutex

	id            string
	createdAt     time.Time
	turns         []types.Turn
	activeClient  *types.Client
	activeProduct *types.Product

	productMentions map[string]int
	clientMentions  map[string]int
	intentCounts    map[types.Intent]int
}

func newSession(id string, now time.Time) *session {
	return &session{
		id:              id,
		createdAt:       now,
		turns:           make([]types.Turn, 0),
		productMentions: make(map[string]int),
		clientMentions:  make(map[string]int),
		intentCounts:    make(map[types.Intent]int),
	}
}

// Manager owns all sessions. Each session has its own lock so different
// conversations never block each other.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	maxTurns int
	now      func() time.Time
}

// NewManager creates a Manager keeping at most maxTurns turns per session.
func NewManager(maxTurns int) *Manager {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Manager{
		sessions: make(map[string]*session),
		maxTurns: maxTurns,
		now:      time.Now,
	}
}

// Start creates (or resets) the session with id.
func (m *Manager) Start(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = newSession(id, m.now())
}

// Exists reports whether a session with id is live.
func (m *Manager) Exists(id string) bool {
	return m.get(id) != nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) get(id string) *session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

func (m *Manager) getOrStart(id string) *session {
	if s := m.get(id); s != nil {
		return s
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := newSession(id, m.now())
	m.sessions[id] = s
	return s
}

// Lock serializes whole turns within one session. It starts the session if needed and
// returns the matching unlock function.
func (m *Manager) Lock(id string) func() {
	s := m.getOrStart(id)
	s.turnMu.Lock()
	return s.turnMu.Unlock
}

// AddTurn appends a turn, starting the session if needed, trims memory to the configured
// maximum and updates mention counts.
func (m *Manager) AddTurn(id, userMessage, botResponse string, tc TurnContext, metadata map[string]any) {
	s := m.getOrStart(id)
	now := m.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	turn := types.Turn{
		Timestamp:   now,
		UserMessage: userMessage,
		BotResponse: botResponse,
		Intent:      tc.Intent,
		Metadata:    metadata,
	}
	for _, c := range tc.Clients {
		turn.ClientIDs = append(turn.ClientIDs, c.ClientID)
		s.clientMentions[c.ClientID]++
	}
	for _, p := range tc.Products {
		turn.ProductIDs = append(turn.ProductIDs, p.ProductID)
		s.productMentions[p.ProductID]++
	}
	if tc.Intent != "" {
		s.intentCounts[tc.Intent]++
	}

	s.turns = append(s.turns, turn)
	if len(s.turns) > m.maxTurns {
		s.turns = append([]types.Turn(nil), s.turns[len(s.turns)-m.maxTurns:]...)
	}
}

// Turns returns a copy of the retained turns, oldest first.
func (m *Manager) Turns(id string) []types.Turn {
	s := m.get(id)
	if s == nil {
		return []types.Turn{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// History returns the last few turns as user/assistant message pairs, most recent last.
func (m *Manager) History(id string) []types.Message {
	turns := m.Turns(id)
	if len(turns) > historyTurns {
		turns = turns[len(turns)-historyTurns:]
	}
	history := make([]types.Message, 0, 2*len(turns))
	for _, t := range turns {
		history = append(history,
			types.Message{Role: types.RoleUser, Content: t.UserMessage},
			types.Message{Role: types.RoleAssistant, Content: t.BotResponse},
		)
	}
	return history
}

// SetActiveClient records the client the conversation is about.
func (m *Manager) SetActiveClient(id string, client *types.Client) {
	s := m.getOrStart(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeClient = client
}

// SetActiveProduct records the product the conversation is about.
func (m *Manager) SetActiveProduct(id string, product *types.Product) {
	s := m.getOrStart(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeProduct = product
}

// ActiveClient returns the session's active client, or nil.
func (m *Manager) ActiveClient(id string) *types.Client {
	s := m.get(id)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeClient
}

// ActiveProduct returns the session's active product, or nil.
func (m *Manager) ActiveProduct(id string) *types.Product {
	s := m.get(id)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeProduct
}

// Clear drops one session.
func (m *Manager) Clear(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// ClearAll drops every session.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]*session)
}

// topKeys returns up to n keys ordered by count descending, then key ascending.
func topKeys(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

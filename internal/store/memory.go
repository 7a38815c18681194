package store

import (
	"log/slog"
	"sync"
	"time"

	"dira-chat-backend/internal/bot"
)

// MemoryStore is the process-wide session store: bounded, TTL-evicted,
// keyed by the session token issued in the cookie. It also keeps the
// one-per-client intro flag and a per-token lock used to serialize
// message handling.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	intro    map[string]bool
	locks    map[string]*sync.Mutex

	maxSessions int
	ttl         time.Duration
	log         *slog.Logger
}

type entry struct {
	sess      bot.Session
	updatedAt time.Time
}

func NewMemoryStore(maxSessions int, ttl time.Duration, log *slog.Logger) *MemoryStore {
	if maxSessions <= 0 {
		maxSessions = 1000
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &MemoryStore{
		sessions:    make(map[string]entry),
		intro:       make(map[string]bool),
		locks:       make(map[string]*sync.Mutex),
		maxSessions: maxSessions,
		ttl:         ttl,
		log:         log,
	}
}

// Get returns the session for a token. An expired record is dropped and a
// zero (idle) session returned instead.
func (m *MemoryStore) Get(token string) bot.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[token]
	if !ok {
		return bot.Session{}
	}
	if time.Since(e.updatedAt) > m.ttl {
		delete(m.sessions, token)
		return bot.Session{}
	}
	return e.sess
}

func (m *MemoryStore) Put(token string, s bot.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[token]; !exists && len(m.sessions) >= m.maxSessions {
		m.evictLocked()
	}
	m.sessions[token] = entry{sess: s, updatedAt: time.Now()}
}

// evictLocked drops expired records, then the stalest one if still full.
func (m *MemoryStore) evictLocked() {
	now := time.Now()
	for t, e := range m.sessions {
		if now.Sub(e.updatedAt) > m.ttl {
			delete(m.sessions, t)
			delete(m.locks, t)
		}
	}
	if len(m.sessions) < m.maxSessions {
		return
	}
	var oldest string
	var oldestAt time.Time
	for t, e := range m.sessions {
		if oldest == "" || e.updatedAt.Before(oldestAt) {
			oldest = t
			oldestAt = e.updatedAt
		}
	}
	if oldest != "" {
		m.log.Warn("session store full, evicting stalest session", "token", oldest)
		delete(m.sessions, oldest)
		delete(m.locks, oldest)
	}
}

func (m *MemoryStore) IntroShown(token string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.intro[token]
}

func (m *MemoryStore) MarkIntroShown(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intro[token] = true
}

// ClearIntro is only called when RESET_CLEARS_INTRO is enabled; by default
// the onboarding text is shown once per client, ever.
func (m *MemoryStore) ClearIntro(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.intro, token)
}

// Reset clears the token's session record. The intro flag is untouched.
func (m *MemoryStore) Reset(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Lock serializes handling for one token. The returned func releases it.
func (m *MemoryStore) Lock(token string) func() {
	m.mu.Lock()
	l, ok := m.locks[token]
	if !ok {
		l = &sync.Mutex{}
		m.locks[token] = l
	}
	m.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Len reports the number of live session records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

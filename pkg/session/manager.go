package session

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"log"
	"sync"
	"time"

	"equipment-chatbot-be/pkg/cache"
)

const (
	sessionKeyPrefix = "session:"
	lockStripes      = 64
)

// Config bounds session storage.
type Config struct {
	MaxHistory int
	TTL        time.Duration
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistory: 20,
		TTL:        24 * time.Hour,
	}
}

// Manager tracks conversation state in the cache store. A store outage
// degrades to a fresh in-process session for the request instead of failing:
// continuity is sacrificed before availability.
type Manager struct {
	store  cache.Store
	config Config
	logger *log.Logger

	locks [lockStripes]sync.Mutex
}

func NewManager(store cache.Store, config Config, logger *log.Logger) *Manager {
	return &Manager{
		store:  store,
		config: config,
		logger: logger,
	}
}

// sessionLock returns the stripe mutex serializing mutations for a session
// id. Appends for the same session must not race across concurrent turns;
// a fixed stripe set keeps memory constant no matter how many session ids
// pass through. Two sessions sharing a stripe contend but stay correct.
func (m *Manager) sessionLock(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &m.locks[h.Sum32()%lockStripes]
}

// Load returns the session for id, or a fresh empty session when absent or
// when the store is unreachable. It never fails.
func (m *Manager) Load(ctx context.Context, id string) *Session {
	data, found, err := m.store.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		m.logger.Printf("[WARN] Session store unavailable, using stateless session %s: %v", id, err)
		return m.emptySession(id)
	}
	if !found {
		return m.emptySession(id)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		m.logger.Printf("[WARN] Corrupt session %s, starting fresh: %v", id, err)
		return m.emptySession(id)
	}
	return &sess
}

// Append records a completed turn under the FIFO eviction rule and persists
// the session. The write is serialized per session id.
func (m *Manager) Append(ctx context.Context, id string, turn Turn) error {
	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess := m.Load(ctx, id)
	sess.History = append(sess.History, turn)
	if len(sess.History) > m.config.MaxHistory {
		sess.History = sess.History[len(sess.History)-m.config.MaxHistory:]
	}
	sess.LastAgent = turn.AgentClass
	sess.LastActive = turn.CreatedAt

	return m.save(ctx, sess)
}

// Touch refreshes the TTL of an existing session without mutating history.
// Absent sessions are left absent so a read never creates state.
func (m *Manager) Touch(ctx context.Context, id string) error {
	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess := m.Load(ctx, id)
	if len(sess.History) == 0 && sess.LastAgent == "" {
		return nil
	}
	sess.LastActive = time.Now()
	return m.save(ctx, sess)
}

// Reset removes the session entirely.
func (m *Manager) Reset(ctx context.Context, id string) error {
	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	return m.store.Delete(ctx, sessionKeyPrefix+id)
}

func (m *Manager) save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, sessionKeyPrefix+sess.ID, data, m.config.TTL)
}

func (m *Manager) emptySession(id string) *Session {
	return &Session{
		ID:         id,
		History:    []Turn{},
		LastActive: time.Now(),
	}
}

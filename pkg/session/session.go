package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/yatrigo/yatrigo/pkg/transit"
)

// Expiry is how long an idle conversation is remembered.
const Expiry = 30 * time.Minute

// State is one user's conversation memory: the last trip asked about and how
// far through the follow-up question rotation they are.
type State struct {
	LastOrigin      string `json:"last_origin"`
	LastDestination string `json:"last_destination"`
	LastCity        string `json:"last_city"`

	QuestionIndex map[string]int `json:"question_index"`

	LastOptions []*transit.RouteOption `json:"last_options"`
}

func (s *State) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *State) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}

// NextQuestionIndex advances the rotation counter for a topic and returns the
// index to use now.
func (s *State) NextQuestionIndex(topic string, size int) int {
	if s.QuestionIndex == nil {
		s.QuestionIndex = map[string]int{}
	}

	index := s.QuestionIndex[topic] % size
	s.QuestionIndex[topic] = index + 1

	return index
}

// Store persists conversation state between queries. A missing session is not
// an error, Get returns a fresh empty state.
type Store interface {
	Get(ctx context.Context, sessionID string) (*State, error)
	Set(ctx context.Context, sessionID string, state *State) error
}

// MemoryStore keeps sessions in-process. It backs the one-shot CLI and any
// deployment without Redis.
type MemoryStore struct {
	mutex    sync.Mutex
	sessions map[string]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]*State{},
	}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*State, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if state := m.sessions[sessionID]; state != nil {
		return state, nil
	}
	return &State{}, nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID string, state *State) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessions[sessionID] = state
	return nil
}

// RedisStore shares sessions between instances with a 30 minute sliding
// expiry.
type RedisStore struct {
	cache *cache.Cache[*State]
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		cache: cache.New[*State](redisstore.NewRedis(client, store.WithExpiration(Expiry))),
	}
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*State, error) {
	state, err := r.cache.Get(ctx, sessionKey(sessionID))
	if err != nil || state == nil {
		return &State{}, nil
	}
	return state, nil
}

func (r *RedisStore) Set(ctx context.Context, sessionID string, state *State) error {
	return r.cache.Set(ctx, sessionKey(sessionID), state, store.WithExpiration(Expiry))
}

func sessionKey(sessionID string) string {
	return "session/" + sessionID
}

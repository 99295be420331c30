package scoring

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// HighScoreKey is the storage key of the best final score.
const HighScoreKey = "csunMapHighScore"

// KV is a string key-value store.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// ParseHighScore decodes a stored high score. Missing, non-numeric and
// negative values all read as 0.
func ParseHighScore(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FormatHighScore encodes a high score as a plain decimal string.
func FormatHighScore(n int) string {
	return strconv.Itoa(n)
}

// LoadHighScore reads the high score from kv.
func LoadHighScore(kv KV) (int, error) {
	raw, ok, err := kv.Get(HighScoreKey)
	if err != nil {
		return 0, fmt.Errorf("scoring: load high score: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return ParseHighScore(raw), nil
}

// RecordHighScore stores final if it beats the stored high score. It
// returns the high score after the update and whether it changed.
func RecordHighScore(kv KV, final int) (int, bool, error) {
	current, err := LoadHighScore(kv)
	if err != nil {
		return 0, false, err
	}

	best, improved := UpdateHighScore(current, final)
	if !improved {
		return best, false, nil
	}
	if err := kv.Set(HighScoreKey, FormatHighScore(best)); err != nil {
		return current, false, fmt.Errorf("scoring: save high score: %w", err)
	}
	return best, true, nil
}

// MemoryKV is an in-process KV, used when no database is available.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

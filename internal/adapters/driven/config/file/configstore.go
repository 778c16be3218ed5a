package file

import (
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/verity/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// DirName is the configuration directory created under the user's home.
const DirName = ".verity"

// ConfigStore keeps settings in a TOML file. Dotted keys are written as
// nested tables and flattened again on load.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// DefaultDir returns ~/.verity.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

// NewConfigStore opens configDir/config.toml, creating configDir if needed.
// An empty configDir means DefaultDir.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get returns the raw value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt accepts TOML integers only. Floats read as 0.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	n, _ := asInt64(val)
	return int(n)
}

// GetFloat accepts floats and integers, so "3" and "3.0" read the same.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	if f, ok := val.(float64); ok {
		return f
	}
	n, _ := asInt64(val)
	return float64(n)
}

func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// asInt64 unwraps decoded TOML integers (int64) and values set in-process (int).
func asInt64(val any) (int64, bool) {
	switch n := val.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data[key]
	s.data[key] = value
	if err := s.save(); err != nil {
		if existed {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(nestMap(s.data))
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0600)
}

// load reads the TOML file. A missing file loads as an empty configuration.
func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	s.data = flattenMap(loaded, "")
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// flattenMap turns {"a": {"b": 1}} into {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	flat := make(map[string]any, len(m))
	for key, value := range m {
		if prefix != "" {
			key = prefix + "." + key
		}
		nested, ok := value.(map[string]any)
		if !ok {
			flat[key] = value
			continue
		}
		maps.Copy(flat, flattenMap(nested, key))
	}
	return flat
}

// nestMap is the inverse of flattenMap. A key that is also the prefix of
// another key, or that sits under such a key, stays flat at the top level.
func nestMap(flat map[string]any) map[string]any {
	prefixes := make(map[string]struct{})
	for key := range flat {
		parts := strings.Split(key, ".")
		for i := 1; i < len(parts); i++ {
			prefixes[strings.Join(parts[:i], ".")] = struct{}{}
		}
	}

	result := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		if _, isPrefix := prefixes[key]; isPrefix || len(parts) == 1 || underValue(parts, flat) {
			result[key] = value
			continue
		}

		node := result
		for _, p := range parts[:len(parts)-1] {
			next, ok := node[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[p] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = value
	}

	return result
}

// underValue reports whether any proper prefix of the key holds a value.
func underValue(parts []string, flat map[string]any) bool {
	for i := 1; i < len(parts); i++ {
		if _, ok := flat[strings.Join(parts[:i], ".")]; ok {
			return true
		}
	}
	return false
}

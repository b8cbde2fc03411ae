package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Store holds config file values flattened to normalized dotted keys.
type Store struct {
	flat map[string]any
}

func DecodeTOML(data []byte) (Store, error) {
	raw := map[string]any{}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return Store{}, err
	}
	return FromRaw(raw), nil
}

func DecodeYAML(data []byte) (Store, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Store{}, err
	}
	return FromRaw(raw), nil
}

func FromRaw(raw map[string]any) Store {
	flat := make(map[string]any)
	flattenMap("", raw, flat)

	normalized := make(map[string]any, len(flat))
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		normalizedKey := NormalizeKey(key)
		if _, exists := normalized[normalizedKey]; exists {
			continue
		}
		normalized[normalizedKey] = flat[key]
	}
	return Store{flat: normalized}
}

// Bool returns the value for key. present is false when the key is absent;
// err is set when the key is present with another type.
func (s Store) Bool(key string) (value bool, present bool, err error) {
	raw, ok := s.flat[NormalizeKey(key)]
	if !ok {
		return false, false, nil
	}
	typed, ok := raw.(bool)
	if !ok {
		return false, true, typeError(key, "boolean", raw)
	}
	return typed, true, nil
}

func (s Store) Int(key string) (int64, bool, error) {
	raw, ok := s.flat[NormalizeKey(key)]
	if !ok {
		return 0, false, nil
	}
	typed, ok := asInt64(raw)
	if !ok {
		return 0, true, typeError(key, "integer", raw)
	}
	return typed, true, nil
}

func (s Store) String(key string) (string, bool, error) {
	raw, ok := s.flat[NormalizeKey(key)]
	if !ok {
		return "", false, nil
	}
	typed, ok := raw.(string)
	if !ok {
		return "", true, typeError(key, "string", raw)
	}
	return strings.TrimSpace(typed), true, nil
}

func typeError(key, want string, value any) error {
	return fmt.Errorf("config key %q: expected %s, got %T", key, want, value)
}

func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	parts := strings.Split(key, ".")
	for i, part := range parts {
		lowered := strings.ToLower(part)
		parts[i] = strings.ReplaceAll(lowered, "_", "-")
	}
	return strings.Join(parts, ".")
}

func flattenMap(prefix string, raw map[string]any, out map[string]any) {
	for key, value := range raw {
		switch typed := value.(type) {
		case map[string]any:
			flattenMap(joinKey(prefix, key), typed, out)
		default:
			out[joinKey(prefix, key)] = value
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func asInt64(value any) (int64, bool) {
	switch typed := value.(type) {
	case int64:
		return typed, true
	case int:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case uint64:
		return int64(typed), true
	case uint32:
		return int64(typed), true
	case float64:
		if typed == float64(int64(typed)) {
			return int64(typed), true
		}
	}
	return 0, false
}

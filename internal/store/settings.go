// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"sort"
	"strings"

	"go.uber.org/atomic"

	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/models"
)

// settingsMap is keyed by the lower-cased setting key; the entry keeps the
// key in the spelling it was delivered with.
type settingsMap map[string]models.Setting

// SettingsStore is the in-memory configuration the host application reads.
//
// Every successful sync cycle builds a complete new map and swaps it in with
// a single pointer store, so readers see either the previous generation or
// the new one and never a mix. A failed cycle never calls Merge.
type SettingsStore struct {
	current *atomic.Pointer[settingsMap]
	logger  *logger.Logger
}

func NewSettingsStore(log *logger.Logger) *SettingsStore {
	empty := settingsMap{}
	return &SettingsStore{
		current: atomic.NewPointer(&empty),
		logger:  log,
	}
}

// Merge replaces the store contents with metadata followed by settings.
// A setting whose key collides with a metadata key wins. Entries with a
// blank key are dropped. Returns the number of keys now held.
func (s *SettingsStore) Merge(settings, metadata []models.Setting) int {
	next := make(settingsMap, len(settings)+len(metadata))

	for _, m := range metadata {
		if strings.TrimSpace(m.Key) == "" {
			continue
		}
		next[strings.ToLower(m.Key)] = m
	}

	for _, setting := range settings {
		if strings.TrimSpace(setting.Key) == "" {
			continue
		}
		k := strings.ToLower(setting.Key)
		if prev, ok := next[k]; ok {
			s.logger.Debug().
				Str("func", "SettingsStore.Merge").
				Str("key", setting.Key).
				Str("replaced", prev.Key).
				Msg("setting overrides an existing key")
		}
		next[k] = setting
	}

	s.current.Store(&next)
	return len(next)
}

// Get returns the value for key, matched case-insensitively.
func (s *SettingsStore) Get(key string) (string, bool) {
	setting, ok := (*s.current.Load())[strings.ToLower(key)]
	return setting.Value, ok
}

// Keys returns every key in its delivered spelling, sorted case-insensitively.
func (s *SettingsStore) Keys() []string {
	m := *s.current.Load()

	keys := make([]string, 0, len(m))
	for _, setting := range m {
		keys = append(keys, setting.Key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})

	return keys
}

// Snapshot returns a copy of the current generation keyed by the delivered
// key spelling.
func (s *SettingsStore) Snapshot() map[string]string {
	m := *s.current.Load()

	out := make(map[string]string, len(m))
	for _, setting := range m {
		out[setting.Key] = setting.Value
	}
	return out
}

func (s *SettingsStore) Len() int {
	return len(*s.current.Load())
}

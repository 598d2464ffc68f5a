package config

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Source produces raw configuration; *Loader is the file-backed Source.
type Source interface {
	Load() (RawConfig, error)
}

// Store holds the active Snapshot. Readers call Current once per unit of
// work and use that snapshot throughout; Reload swaps the pointer only after
// a new snapshot has been fully built.
type Store struct {
	current atomic.Pointer[Snapshot]
	source  Source
	log     *zap.Logger

	mu sync.Mutex // serializes reloads
}

// NewStore starts with the default snapshot until the first Reload.
func NewStore(src Source, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{source: src, log: log}
	s.current.Store(Default())
	return s
}

// NewStaticStore publishes snap and has no source to reload from.
func NewStaticStore(snap *Snapshot) *Store {
	s := &Store{log: zap.NewNop()}
	s.current.Store(snap)
	return s
}

func (s *Store) Current() *Snapshot { return s.current.Load() }

// Publish replaces the active snapshot.
func (s *Store) Publish(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.current.Store(snap)
}

// Reload reads the source, builds a new snapshot and publishes it. On any
// error the previous snapshot stays active.
func (s *Store) Reload() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source == nil {
		return s.Current(), nil
	}
	raw, err := s.source.Load()
	if err != nil {
		s.log.Warn("config reload failed; keeping previous snapshot", zap.Error(err))
		return nil, err
	}
	snap, err := Build(raw)
	if err != nil {
		s.log.Warn("config rejected; keeping previous snapshot", zap.Error(err))
		return nil, err
	}
	s.current.Store(snap)
	s.log.Info("config reloaded",
		zap.String("version", snap.Version),
		zap.Int("entities", len(snap.entities)),
		zap.Int("replacements", len(snap.replacements)),
	)
	return snap, nil
}

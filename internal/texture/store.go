// Package texture holds the per-frame texture sets and applies revision
// actions to them. The store is the sole mutator of the frame mapping;
// render-side collaborators only ever call Get.
package texture

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/cutout/internal/logger"
	"github.com/bethropolis/cutout/internal/revision"
	"github.com/bethropolis/cutout/internal/types"
)

var (
	// ErrUnknownTexture indicates that a Remove or Transform targeted an id
	// that does not exist in the frame.
	ErrUnknownTexture = errors.New("texture not found")

	// ErrInvalidAction indicates a malformed action (missing payload).
	ErrInvalidAction = errors.New("invalid action payload")
)

// Store maps frame indices to their ordered texture sets. Entries are
// created lazily on first mutation; Get on an untouched frame returns an
// empty set. Slice order is z-order.
type Store struct {
	mu     sync.RWMutex
	frames map[int][]types.TextureItem
	log    *revision.Log
}

// NewStore creates a store that appends every applied mutation to log.
func NewStore(log *revision.Log) *Store {
	return &Store{
		frames: make(map[int][]types.TextureItem),
		log:    log,
	}
}

// Get returns a copy of the texture set for a frame. Never fails; unknown
// frames yield an empty set.
func (s *Store) Get(frame int) []types.TextureItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.frames[frame]
	out := make([]types.TextureItem, len(items))
	copy(out, items)
	return out
}

// Find returns a copy of the item with the given id in a frame.
func (s *Store) Find(frame int, id string) (types.TextureItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(frame, id); idx >= 0 {
		return s.frames[frame][idx].Clone(), nil
	}
	return types.TextureItem{}, fmt.Errorf("find %q in frame %d: %w", id, frame, ErrUnknownTexture)
}

// Count returns the number of textures in a frame.
func (s *Store) Count(frame int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.frames[frame])
}

// Frames returns the authored frame indices in ascending order.
func (s *Store) Frames() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int, 0, len(s.frames))
	for f := range s.frames {
		out = append(out, f)
	}
	sort.Ints(out)
	return out
}

// Apply mutates the frame's texture set and appends the resulting revision
// record to the log before returning. On failure nothing is mutated and no
// record is produced. The returned item is the affected item for Add and
// Transform, nil otherwise.
func (s *Store) Apply(frame int, act revision.Action) (*types.TextureItem, error) {
	s.mu.Lock()

	var rec *revision.Record
	var affected *types.TextureItem

	switch act.Kind {
	case revision.AddAction:
		if act.Item == nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("add: %w", ErrInvalidAction)
		}
		item := act.Item.Clone()
		s.frames[frame] = append(s.frames[frame], item)
		after := item.Clone()
		rec = &revision.Record{Frame: frame, Kind: revision.AddAction, ID: item.ID, After: &after}
		affected = &item

	case revision.RemoveAction:
		idx := s.indexOf(frame, act.ID)
		if idx < 0 {
			s.mu.Unlock()
			return nil, fmt.Errorf("remove %q from frame %d: %w", act.ID, frame, ErrUnknownTexture)
		}
		before := s.frames[frame][idx].Clone()
		s.frames[frame] = append(s.frames[frame][:idx], s.frames[frame][idx+1:]...)
		s.dropIfEmpty(frame)
		rec = &revision.Record{Frame: frame, Kind: revision.RemoveAction, ID: act.ID, Before: &before, Index: idx}

	case revision.TransformAction:
		if act.Transform == nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("transform: %w", ErrInvalidAction)
		}
		idx := s.indexOf(frame, act.ID)
		if idx < 0 {
			s.mu.Unlock()
			return nil, fmt.Errorf("transform %q in frame %d: %w", act.ID, frame, ErrUnknownTexture)
		}
		before := s.frames[frame][idx].Clone()
		s.frames[frame][idx].Transform = *act.Transform
		after := s.frames[frame][idx].Clone()
		rec = &revision.Record{Frame: frame, Kind: revision.TransformAction, ID: act.ID, Before: &before, After: &after}
		affected = &after

	case revision.ClearAction:
		snapshot := make([]types.TextureItem, len(s.frames[frame]))
		for i, it := range s.frames[frame] {
			snapshot[i] = it.Clone()
		}
		delete(s.frames, frame)
		rec = &revision.Record{Frame: frame, Kind: revision.ClearAction, Removed: snapshot}

	default:
		s.mu.Unlock()
		return nil, fmt.Errorf("apply: %w", ErrInvalidAction)
	}

	s.mu.Unlock()

	// Append outside the store lock; the log has its own.
	s.log.Record(rec)
	logger.Debugf("Store: Applied %v on frame %d (id=%s)", act.Kind, frame, rec.ID)
	return affected, nil
}

// Revert reverse-applies a record returned by the log's Undo.
func (s *Store) Revert(rec *revision.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch rec.Kind {
	case revision.AddAction:
		idx := s.indexOf(rec.Frame, rec.ID)
		if idx < 0 {
			return fmt.Errorf("revert add %q: %w", rec.ID, ErrUnknownTexture)
		}
		s.frames[rec.Frame] = append(s.frames[rec.Frame][:idx], s.frames[rec.Frame][idx+1:]...)
		s.dropIfEmpty(rec.Frame)

	case revision.RemoveAction:
		s.insertAt(rec.Frame, rec.Before.Clone(), rec.Index)

	case revision.TransformAction:
		idx := s.indexOf(rec.Frame, rec.ID)
		if idx < 0 {
			return fmt.Errorf("revert transform %q: %w", rec.ID, ErrUnknownTexture)
		}
		s.frames[rec.Frame][idx] = rec.Before.Clone()

	case revision.ClearAction:
		restored := make([]types.TextureItem, len(rec.Removed))
		for i, it := range rec.Removed {
			restored[i] = it.Clone()
		}
		if len(restored) > 0 {
			s.frames[rec.Frame] = restored
		}

	default:
		return fmt.Errorf("revert: %w", ErrInvalidAction)
	}
	return nil
}

// Reapply forward-applies a record returned by the log's Redo.
func (s *Store) Reapply(rec *revision.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch rec.Kind {
	case revision.AddAction:
		s.frames[rec.Frame] = append(s.frames[rec.Frame], rec.After.Clone())

	case revision.RemoveAction:
		idx := s.indexOf(rec.Frame, rec.ID)
		if idx < 0 {
			return fmt.Errorf("reapply remove %q: %w", rec.ID, ErrUnknownTexture)
		}
		s.frames[rec.Frame] = append(s.frames[rec.Frame][:idx], s.frames[rec.Frame][idx+1:]...)
		s.dropIfEmpty(rec.Frame)

	case revision.TransformAction:
		idx := s.indexOf(rec.Frame, rec.ID)
		if idx < 0 {
			return fmt.Errorf("reapply transform %q: %w", rec.ID, ErrUnknownTexture)
		}
		s.frames[rec.Frame][idx] = rec.After.Clone()

	case revision.ClearAction:
		delete(s.frames, rec.Frame)

	default:
		return fmt.Errorf("reapply: %w", ErrInvalidAction)
	}
	return nil
}

// indexOf returns the z-position of an id in a frame, or -1.
// Caller must hold the lock.
func (s *Store) indexOf(frame int, id string) int {
	for i, it := range s.frames[frame] {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// insertAt restores an item at a z-position, clamping to the slice bounds.
// Caller must hold the lock.
func (s *Store) insertAt(frame int, item types.TextureItem, idx int) {
	items := s.frames[frame]
	if idx < 0 {
		idx = 0
	}
	if idx > len(items) {
		idx = len(items)
	}
	items = append(items, types.TextureItem{})
	copy(items[idx+1:], items[idx:])
	items[idx] = item
	s.frames[frame] = items
}

// dropIfEmpty removes a frame entry once its last texture is gone, keeping
// the mapping to authored frames only. Caller must hold the lock.
func (s *Store) dropIfEmpty(frame int) {
	if len(s.frames[frame]) == 0 {
		delete(s.frames, frame)
	}
}

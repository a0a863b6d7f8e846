package segment

import (
	"os"
	"sort"

	kvserrors "github.com/gokvs/kvs/pkg/errors"
)

// Store is the directory-level facade over segment files: it discovers
// existing segments at open, tracks which one is active, and provides the
// create/delete operations compaction needs. The engine is the only caller;
// Store performs no locking of its own, relying on the engine's single
// read/write lock to serialize mutation.
type Store struct {
	dir      string
	segments map[uint64]*Segment
	activeID uint64
}

// Open discovers the segments already present in dir, opening every
// historical one read-only and the highest-numbered one for append. If dir
// is empty, it creates segment 1 as the initial active segment.
func Open(dir string) (*Store, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	ids, err := discoverIDs(dir)
	if err != nil {
		return nil, err
	}

	s := &Store{dir: dir, segments: make(map[uint64]*Segment, len(ids)+1)}

	if len(ids) == 0 {
		active, err := createActive(dir, 1)
		if err != nil {
			return nil, err
		}
		s.segments[1] = active
		s.activeID = 1
		return s, nil
	}

	for _, id := range ids {
		var seg *Segment
		var err error
		if id == ids[len(ids)-1] {
			seg, err = openActive(dir, id)
		} else {
			seg, err = openSealed(dir, id)
		}
		if err != nil {
			s.closeAll()
			return nil, err
		}
		s.segments[id] = seg
	}
	s.activeID = ids[len(ids)-1]

	return s, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return kvserrors.ClassifyDirectoryCreationError(err, dir)
	}
	return nil
}

// Active returns the current active segment.
func (s *Store) Active() *Segment { return s.segments[s.activeID] }

// ActiveID returns the id of the current active segment.
func (s *Store) ActiveID() uint64 { return s.activeID }

// Get returns the segment with the given id, if it is open.
func (s *Store) Get(id uint64) (*Segment, bool) {
	seg, ok := s.segments[id]
	return seg, ok
}

// Ascending returns every open segment sorted by ascending id, the order
// replay must process them in.
func (s *Store) Ascending() []*Segment {
	ids := make([]uint64, 0, len(s.segments))
	for id := range s.segments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*Segment, len(ids))
	for i, id := range ids {
		out[i] = s.segments[id]
	}
	return out
}

// CreateSealed creates a brand-new empty segment file opened read/write so
// the caller (compaction) can append the compacted records into it, without
// making it the active segment. The handle is not re-opened afterwards: it
// stays read/write, and nothing appends to it once compaction is done.
func (s *Store) CreateSealed(id uint64) (*Segment, error) {
	seg, err := createActive(s.dir, id)
	if err != nil {
		return nil, err
	}
	s.segments[id] = seg
	return seg, nil
}

// CreateActive creates a brand-new empty segment and marks it as active.
func (s *Store) CreateActive(id uint64) (*Segment, error) {
	seg, err := createActive(s.dir, id)
	if err != nil {
		return nil, err
	}
	s.segments[id] = seg
	s.activeID = id
	return seg, nil
}

// DeleteUpTo closes and removes every segment with id <= maxID, which must
// not include the current active segment.
func (s *Store) DeleteUpTo(maxID uint64) error {
	for id, seg := range s.segments {
		if id > maxID {
			continue
		}
		if id == s.activeID {
			continue
		}
		if err := seg.remove(); err != nil {
			return err
		}
		delete(s.segments, id)
	}
	return nil
}

// Dir returns the data directory the store manages.
func (s *Store) Dir() string { return s.dir }

// MaxID returns the highest segment id currently open, which is always the
// active segment's id per the strictly-increasing-ids invariant.
func (s *Store) MaxID() uint64 { return s.activeID }

// Close closes every open segment handle.
func (s *Store) Close() error {
	return s.closeAll()
}

func (s *Store) closeAll() error {
	var firstErr error
	for _, seg := range s.segments {
		if err := seg.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

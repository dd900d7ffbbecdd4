package dataset

import (
	"sync"

	"github.com/angas/pv-revenue-go/types"
)

// Store holds the current set of projects. Uploads add to it while the web
// handlers read it, hence the lock.
type Store struct {
	mu       sync.RWMutex
	projects []types.Project
}

func NewStore(initial []types.Project) *Store {
	return &Store{projects: initial}
}

// All returns a copy of the current projects.
func (s *Store) All() []types.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Put adds a project, replacing any existing one with the same name so that
// re-uploading a corrected file just works.
func (s *Store) Put(p types.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.projects {
		if existing.Name == p.Name {
			s.projects[i] = p
			return
		}
	}
	s.projects = append(s.projects, p)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

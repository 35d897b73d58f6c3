package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mohae/deepcopy"

	"github.com/goliatone/go-portfolio/pkg/media"
	"github.com/goliatone/go-portfolio/pkg/model"
)

// ErrProjectNotFound is reported by image loads whose project does not exist
// (or no longer exists when the load completes).
var ErrProjectNotFound = errors.New("store: project not found")

// RemoveResult describes the outcome of RemoveProject.
type RemoveResult int

const (
	// Removed means the project was found and removed.
	Removed RemoveResult = iota
	// NotFound means no project carries the id; the call was a no-op.
	NotFound
	// KeptLast means removal was refused by the minimum project policy.
	KeptLast
)

func (r RemoveResult) String() string {
	switch r {
	case Removed:
		return "removed"
	case NotFound:
		return "not_found"
	case KeptLast:
		return "kept_last"
	}
	return fmt.Sprintf("RemoveResult(%d)", int(r))
}

// Store owns the portfolio document of one editing session.
type Store struct {
	mu          sync.Mutex
	doc         model.Document
	seed        *model.Document
	minProjects int
	clock       func() time.Time
	encoder     ImageEncoder
	lastID      int64
	version     uint64

	loads   map[string]*ImageLoad
	loadSeq uint64

	subscribers map[int]func(model.Document)
	nextSub     int
}

// New constructs a Store holding a fresh document.
func New(options ...Option) *Store {
	s := &Store{
		minProjects: DefaultMinProjects,
		clock:       time.Now,
		loads:       make(map[string]*ImageLoad),
		subscribers: make(map[int]func(model.Document)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.encoder == nil {
		s.encoder = media.NewEncoder()
	}

	doc := model.NewDocument()
	if s.seed != nil {
		doc = cloneDocument(*s.seed)
		s.seed = nil
	}
	s.doc = s.normalise(doc)
	return s
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDocument(s.doc)
}

// Version increments on every effective mutation.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// MinProjects reports the configured minimum project count.
func (s *Store) MinProjects() int {
	return s.minProjects
}

// UpdateField sets a top-level scalar. Any string is accepted.
func (s *Store) UpdateField(field model.Field, value string) error {
	s.mu.Lock()
	if err := s.doc.Set(field, value); err != nil {
		s.mu.Unlock()
		return err
	}
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
	return nil
}

// AddProject appends an empty project with a fresh id and returns it.
func (s *Store) AddProject() model.Project {
	s.mu.Lock()
	project := model.Project{ID: s.nextIDLocked()}
	s.doc.Projects = append(s.doc.Projects, project)
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
	return project
}

// RemoveProject removes the project with the given id. Missing ids are a
// no-op reported as NotFound; removals that would go below the configured
// minimum are refused with KeptLast.
func (s *Store) RemoveProject(id int64) RemoveResult {
	s.mu.Lock()
	idx := s.doc.ProjectIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return NotFound
	}
	if len(s.doc.Projects) <= s.minProjects {
		s.mu.Unlock()
		return KeptLast
	}

	projects := make([]model.Project, 0, len(s.doc.Projects)-1)
	projects = append(projects, s.doc.Projects[:idx]...)
	projects = append(projects, s.doc.Projects[idx+1:]...)
	s.doc.Projects = projects
	s.cancelLoadLocked(ProjectImage(id).Key())
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
	return Removed
}

// UpdateProject sets one field of the project with the given id. It reports
// whether the project was found; a missing id is a no-op.
func (s *Store) UpdateProject(id int64, field model.ProjectField, value string) (bool, error) {
	s.mu.Lock()
	idx := s.doc.ProjectIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	if err := s.doc.Projects[idx].Set(field, value); err != nil {
		s.mu.Unlock()
		return true, err
	}
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
	return true, nil
}

// UpdateContact sets one of the fixed contact channels.
func (s *Store) UpdateContact(channel model.ContactChannel, value string) error {
	s.mu.Lock()
	if err := s.doc.Contacts.Set(channel, value); err != nil {
		s.mu.Unlock()
		return err
	}
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
	return nil
}

// Replace swaps the whole document. Missing or duplicate project ids are
// reassigned and the list is padded to the configured minimum. In-flight
// image loads are cancelled.
func (s *Store) Replace(doc model.Document) {
	s.mu.Lock()
	for key := range s.loads {
		s.cancelLoadLocked(key)
	}
	s.lastID = 0
	s.doc = s.normalise(cloneDocument(doc))
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
}

// Subscribe registers fn to receive a snapshot after every effective
// mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(model.Document)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// commitLocked bumps the version and captures the notification to deliver
// once the lock is released.
func (s *Store) commitLocked() func() {
	s.version++
	if len(s.subscribers) == 0 {
		return func() {}
	}
	snapshot := cloneDocument(s.doc)
	fns := make([]func(model.Document), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(cloneDocument(snapshot))
		}
	}
}

// nextIDLocked derives a monotonic id from the clock: the current time in
// milliseconds, bumped past the previous id when the clock has not advanced.
func (s *Store) nextIDLocked() int64 {
	id := s.clock().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) normalise(doc model.Document) model.Document {
	if highest := doc.MaxProjectID(); highest > s.lastID {
		s.lastID = highest
	}
	seen := make(map[int64]struct{}, len(doc.Projects))
	for i := range doc.Projects {
		id := doc.Projects[i].ID
		if _, dup := seen[id]; id <= 0 || dup {
			id = s.nextIDLocked()
			doc.Projects[i].ID = id
		}
		seen[id] = struct{}{}
	}
	for len(doc.Projects) < s.minProjects {
		doc.Projects = append(doc.Projects, model.Project{ID: s.nextIDLocked()})
	}
	if doc.Projects == nil {
		doc.Projects = []model.Project{}
	}
	return doc
}

func cloneDocument(doc model.Document) model.Document {
	copied, ok := deepcopy.Copy(doc).(model.Document)
	if !ok {
		return doc
	}
	return copied
}

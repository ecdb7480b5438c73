package task

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps tasks in memory in insertion order.
type Store struct {
	mu    sync.RWMutex
	tasks []Task
	now   func() time.Time
}

// NewStore creates an empty store. A nil clock defaults to time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// Add appends a task built from the draft. due is the already parsed due
// timestamp (nil for none). Nothing is added when the title is blank.
func (s *Store) Add(d Draft, due *time.Time) (Task, bool) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Task{}, false
	}

	t := Task{
		ID:        newID(),
		Title:     title,
		Tags:      ParseTags(d.Tags),
		Color:     ParseColor(d.Color),
		CreatedAt: s.now(),
	}
	if due != nil {
		dd := *due
		t.Due = &dd
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	return t.clone(), true
}

// Toggle flips the completed flag of the task with the given id.
func (s *Store) Toggle(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i].clone(), true
}

// Delete removes the task with the given id.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return true
}

// Get returns a copy of a single task.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i].clone(), true
}

// List returns copies of all tasks in insertion order.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.clone())
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// FlagDue latches the reminder flag on every open task whose due time is at
// or before now and returns the tasks flagged by this call. A task is never
// returned twice.
func (s *Store) FlagDue(now time.Time) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var flagged []Task
	for i := range s.tasks {
		if !s.tasks[i].reminderDue(now) {
			continue
		}
		s.tasks[i].Reminded = true
		flagged = append(flagged, s.tasks[i].clone())
	}
	return flagged
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// newID returns a time-ordered identifier.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

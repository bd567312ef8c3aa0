package csvstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/taskflow/internal/model"
)

// CSV-backed storage. Single file, one task per line, rewritten in full on
// every change. No locking: two processes on the same file, last writer wins.

// ErrIncompleteLoad is returned by Save while the last Load could not read
// the whole backing file. Writing then would drop the tasks it never saw.
var ErrIncompleteLoad = errors.New("task file was not fully read")

// Store owns every task for the lifetime of the process.
type Store struct {
	path    string
	tasks   []model.Task
	nextID  int
	loadErr error
	logger  *log.Logger
}

// Open creates a store for path and loads whatever is already there.
// A missing file gives an empty store; an unreadable one is logged and also
// gives an empty store, so the process keeps working in memory.
func Open(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{path: path, nextID: 1, logger: logger}
	if err := s.Load(); err != nil {
		s.logger.Warn("could not read task file", "path", path, "err", err)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load replaces the in-memory tasks with the contents of the backing file.
// Lines that fail to decode are skipped with a warning. Lines have no length
// limit. If the file cannot be read to the end, the error is kept and Save
// refuses to overwrite the file until a later Load succeeds.
func (s *Store) Load() error {
	s.tasks = nil
	s.loadErr = s.load()
	return s.loadErr
}

func (s *Store) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("no task file yet", "path", s.path)
			return nil
		}
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	seen := make(map[int]bool)
	r := bufio.NewReader(f)
	lineNo := 0
	for {
		raw, err := r.ReadString('\n')
		if raw != "" {
			lineNo++
			s.addLine(lineNo, raw, seen)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
	}
}

func (s *Store) addLine(lineNo int, raw string, seen map[int]bool) {
	line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
	if strings.TrimSpace(line) == "" {
		return
	}
	t, err := model.Decode(line)
	if err != nil {
		s.logger.Warn("skipping task line", "line", lineNo, "err", err)
		return
	}
	if seen[t.ID] {
		s.logger.Warn("skipping task line", "line", lineNo, "err", fmt.Sprintf("duplicate id %d", t.ID))
		return
	}
	seen[t.ID] = true
	s.tasks = append(s.tasks, t)
	// never move the counter backwards, even across reloads
	if t.ID >= s.nextID {
		s.nextID = t.ID + 1
	}
}

// Save rewrites the backing file from scratch, creating its directory first.
func (s *Store) Save() error {
	if s.loadErr != nil {
		return fmt.Errorf("%w: %v", ErrIncompleteLoad, s.loadErr)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	var b strings.Builder
	for _, t := range s.tasks {
		b.WriteString(t.Encode())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Close flushes the tasks one last time.
func (s *Store) Close() error {
	return s.Save()
}

// persist saves after a mutation. Failure is logged, memory stays authoritative.
func (s *Store) persist() {
	if err := s.Save(); err != nil {
		s.logger.Warn("could not save tasks", "path", s.path, "err", err)
	}
}

// Add appends a new pending task with the next id. Callers validate the title.
func (s *Store) Add(title, description string, priority int, deadline string) model.Task {
	t := model.Task{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Deadline:    deadline,
	}
	s.nextID++
	s.tasks = append(s.tasks, t)
	s.persist()
	return t
}

// List returns a copy of all tasks in insertion order.
func (s *Store) List() []model.Task {
	return slices.Clone(s.tasks)
}

// Find looks a task up by id and returns a copy of it.
func (s *Store) Find(id int) (model.Task, bool) {
	t := s.find(id)
	if t == nil {
		return model.Task{}, false
	}
	return *t, true
}

// MarkDone sets the done flag. It reports whether the task exists.
func (s *Store) MarkDone(id int, done bool) bool {
	t := s.find(id)
	if t == nil {
		return false
	}
	t.Done = done
	s.persist()
	return true
}

// Remove deletes a task. Its id is never handed out again.
func (s *Store) Remove(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.persist()
	return true
}

// Edit updates the given fields of a task. Empty strings and a negative
// priority leave the matching field unchanged.
func (s *Store) Edit(id int, title, description string, priority int, deadline string) bool {
	t := s.find(id)
	if t == nil {
		return false
	}
	if title != "" {
		t.Title = title
	}
	if description != "" {
		t.Description = description
	}
	if priority >= 0 {
		t.Priority = priority
	}
	if deadline != "" {
		t.Deadline = deadline
	}
	s.persist()
	return true
}

// find returns a pointer into the task slice, valid until the next append or delete.
func (s *Store) find(id int) *model.Task {
	if i := s.indexOf(id); i >= 0 {
		return &s.tasks[i]
	}
	return nil
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

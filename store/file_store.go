package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// FileStore keeps the mirror ledger as a JSON array of upstream issue numbers
// in a single file. The whole set is loaded at construction time and the file
// is rewritten through a temp-file rename on every Add, so a crashed sweep
// never leaves a half-written ledger behind.
type FileStore struct {
	path string

	mu       sync.Mutex
	mirrored map[int]bool
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:     path,
		mirrored: map[int]bool{},
	}
	if err := s.load(); err != nil {
		return nil, errors.Wrap(err, "unable to load mirror ledger")
	}
	return s, nil
}

func (s *FileStore) Mirror() MirrorStore {
	return s
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) Contains(upstreamNumber int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirrored[upstreamNumber], nil
}

func (s *FileStore) Add(upstreamNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mirrored[upstreamNumber] {
		return nil
	}
	s.mirrored[upstreamNumber] = true

	if err := s.write(); err != nil {
		// Roll back so a retry rewrites the file.
		delete(s.mirrored, upstreamNumber)
		return errors.Wrap(err, "unable to write mirror ledger")
	}
	return nil
}

func (s *FileStore) List() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	numbers := make([]int, 0, len(s.mirrored))
	for number := range s.mirrored {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)
	return numbers, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	var numbers []int
	if err := json.Unmarshal(data, &numbers); err != nil {
		return err
	}
	for _, number := range numbers {
		s.mirrored[number] = true
	}
	return nil
}

func (s *FileStore) write() error {
	numbers := make([]int, 0, len(s.mirrored))
	for number := range s.mirrored {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	data, err := json.Marshal(numbers)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

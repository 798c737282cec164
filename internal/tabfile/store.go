package tabfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/statebank-dev/statebank/internal/filelock"
)

// ErrNotFound is returned when the data file or a named table is absent.
// A table that exists with no rows is empty, not absent.
var ErrNotFound = errors.New("not found")

// Store reads and rewrites named tables in a single shared data file.
// Reads take no lock; every mutation runs under the file lock and rewrites
// the whole file, so cost is O(total rows), acceptable at this scale.
type Store struct {
	path string
	lock *filelock.Lock
}

// NewStore creates a Store over the data file at path, serialized by lock.
func NewStore(path string, lock *filelock.Lock) *Store {
	return &Store{path: path, lock: lock}
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// ReadAll reads the full workbook without locking. Returns ErrNotFound if
// the data file does not exist.
func (s *Store) ReadAll() (*Workbook, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("data file %s: %w", s.path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	wb, err := ReadWorkbook(f)
	if err != nil {
		return nil, fmt.Errorf("data file %s: %w", s.path, err)
	}
	return wb, nil
}

// ReadTable reads one named table without locking. Returns ErrNotFound if
// the file or the table is absent; an empty table reads back with no rows.
func (s *Store) ReadTable(name string) (Table, error) {
	wb, err := s.ReadAll()
	if err != nil {
		return Table{}, err
	}
	t := wb.Table(name)
	if t == nil {
		return Table{}, fmt.Errorf("table %q: %w", name, ErrNotFound)
	}
	return *t, nil
}

// ReplaceTable overwrites the named table under the lock, creating the data
// file if necessary and leaving every other table untouched.
func (s *Store) ReplaceTable(t Table) error {
	return s.Update(func(wb *Workbook) error {
		wb.Replace(t)
		return nil
	})
}

// AppendRow appends one row to the named table under the lock, creating the
// table with the given header if it does not exist yet. The read and the
// rewrite happen inside a single lock acquisition.
func (s *Store) AppendRow(name string, header, row []string) error {
	return s.Update(func(wb *Workbook) error {
		t := wb.Table(name)
		if t == nil {
			wb.Replace(Table{Name: name, Header: header, Rows: [][]string{row}})
			return nil
		}
		t.Rows = append(t.Rows, row)
		return nil
	})
}

// Update runs fn against the current workbook and rewrites the data file
// with fn's result, all inside one lock acquisition. A missing data file
// presents as an empty workbook. This is the primitive ledger writes use to
// make read-compute-append atomic relative to other writers.
func (s *Store) Update(fn func(*Workbook) error) error {
	return s.lock.With(func() error {
		wb, err := s.ReadAll()
		if errors.Is(err, ErrNotFound) {
			wb = &Workbook{}
		} else if err != nil {
			return err
		}

		if err := fn(wb); err != nil {
			return err
		}
		return s.writeWorkbook(wb)
	})
}

// writeWorkbook rewrites the data file via a temp file and rename, so
// unlocked readers never observe a half-written file.
func (s *Store) writeWorkbook(wb *Workbook) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".statebank-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp data file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after successful rename

	if err := WriteWorkbook(tmp, wb); err != nil {
		tmp.Close()
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp data file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

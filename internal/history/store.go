package history

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio"
)

var (
	// ErrNotExist is returned by Store.Open before any list has been saved.
	ErrNotExist = errors.New("history does not exist")

	errBufferClosed = errors.New("write to closed buffer")
)

// Store holds the serialized history list.
type Store interface {
	Open() (io.ReadCloser, error)
	Update() (PendingWriter, error)
}

// PendingWriter is a replacement of store content being written. Close
// commits it; Cleanup discards it, unless it has already been committed.
type PendingWriter interface {
	io.WriteCloser
	Cleanup() error
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu      sync.Mutex
	cur     string
	defined bool
}

// Open returns a reader over the current content.
func (ms *MemStore) Open() (io.ReadCloser, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !ms.defined {
		return nil, ErrNotExist
	}
	return ioutil.NopCloser(bytes.NewReader([]byte(ms.cur))), nil
}

// Update returns a buffer that replaces the current content when closed.
func (ms *MemStore) Update() (PendingWriter, error) {
	const minSize = 1024
	pb := &pendingBuffer{sink: ms.set}
	ms.mu.Lock()
	n := len(ms.cur)
	ms.mu.Unlock()
	if n < minSize {
		n = minSize
	}
	pb.buf.Grow(n)
	return pb, nil
}

// String returns the current content.
func (ms *MemStore) String() string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.cur
}

func (ms *MemStore) set(content string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.cur = content
	ms.defined = true
	return nil
}

type pendingBuffer struct {
	buf    bytes.Buffer
	closed bool
	sink   func(string) error
}

func (pb *pendingBuffer) Write(p []byte) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.Write(p)
}

func (pb *pendingBuffer) Close() error {
	if !pb.closed {
		pb.closed = true
		return pb.sink(pb.buf.String())
	}
	return nil
}

func (pb *pendingBuffer) Cleanup() error {
	// discarded, unless already closed
	pb.closed = true
	return nil
}

// FileStore keeps the list as a JSON file named after StorageKey within Dir.
type FileStore struct {
	Dir string
}

// Path returns the store's file path.
func (fst FileStore) Path() string {
	return filepath.Join(fst.Dir, StorageKey+".json")
}

// Open opens the store file for reading.
func (fst FileStore) Open() (io.ReadCloser, error) {
	f, err := os.Open(fst.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotExist
	}
	return f, err
}

// Update creates a temporary file next to the store file, which atomically
// replaces it when closed.
func (fst FileStore) Update() (PendingWriter, error) {
	if err := os.MkdirAll(fst.Dir, 0o755); err != nil {
		return nil, err
	}
	path := fst.Path()
	pf, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return nil, err
	}
	return pendingFile{pf}, nil
}

type pendingFile struct {
	*renameio.PendingFile
}

func (pf pendingFile) Close() error { return pf.CloseAtomicallyReplace() }

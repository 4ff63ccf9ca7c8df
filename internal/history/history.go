// Package history keeps the bounded list of recently generated notes.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jcorbin/noteforge/internal/notegen"
)

// StorageKey names the persisted history list.
const StorageKey = "note_forge_history"

// Limit is the maximum number of notes retained.
const Limit = 10

// ErrNoEntry is returned when looking up an index outside the list.
var ErrNoEntry = errors.New("no such history entry")

// Entry is one generated note.
type Entry struct {
	Subject   string        `json:"subject"`
	Topic     string        `json:"topic"`
	Level     notegen.Level `json:"level,omitempty"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
}

// List holds entries newest first.
type List []Entry

// Push returns a new list with e prepended, truncated to Limit entries.
// The receiver is not modified.
func (l List) Push(e Entry) List {
	n := len(l) + 1
	if n > Limit {
		n = Limit
	}
	out := make(List, 0, n)
	out = append(out, e)
	return append(out, l[:n-1]...)
}

// Get returns the n-th entry, counting from 1 for the newest.
func (l List) Get(n int) (Entry, error) {
	if n < 1 || n > len(l) {
		return Entry{}, fmt.Errorf("%w #%v (have %v)", ErrNoEntry, n, len(l))
	}
	return l[n-1], nil
}

// Load reads the list held by store; a store with no list yet yields an empty
// list. Entries beyond Limit are dropped.
func Load(store Store) (_ List, rerr error) {
	rc, err := store.Open()
	if errors.Is(err, ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); rerr == nil {
			rerr = cerr
		}
	}()

	var list List
	if err := json.NewDecoder(rc).Decode(&list); err != nil {
		return nil, fmt.Errorf("unable to decode %v: %w", StorageKey, err)
	}
	if len(list) > Limit {
		list = list[:Limit]
	}
	return list, nil
}

// Save replaces the list held by store. Nothing is replaced unless the whole
// list was written successfully.
func Save(store Store, list List) (rerr error) {
	if len(list) > Limit {
		list = list[:Limit]
	}
	w, err := store.Update()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Cleanup(); rerr == nil {
			rerr = cerr
		}
	}()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return err
	}
	return w.Close()
}

// Record loads the list, pushes e, and saves the result, returning the new
// list.
func Record(store Store, e Entry) (List, error) {
	list, err := Load(store)
	if err != nil {
		return nil, err
	}
	list = list.Push(e)
	if err := Save(store, list); err != nil {
		return nil, err
	}
	return list, nil
}

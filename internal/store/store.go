// Package store holds the authoritative collection of deliverables and keeps
// it durable in a single blob.
//
// Every mutation rewrites the whole collection. That is O(n) per call, which is
// fine for the expected size (tens of records). Load and save failures never
// abort: they are reported through [Options.OnError] and the in-memory
// collection stays the source of truth for the rest of the process.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/calvinalkan/deliverables/internal/deliverable"
)

// Options configures a [Store].
type Options struct {
	// OnError receives load and save failures. The errors wrap [ErrLoad] or
	// [ErrSave]. Nil discards them.
	OnError func(error)
}

// Store is the in-memory collection plus its backing blob.
//
// Store is not safe for concurrent use. One owner constructs it at startup and
// keeps it for the process lifetime.
type Store struct {
	blob    Blob
	onError func(error)

	items []deliverable.Deliverable

	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func()
}

// Open creates a store backed by blob and loads its current contents.
// A blob that was never written yields an empty store.
func Open(blob Blob, opts Options) *Store {
	if blob == nil {
		panic("store: blob is nil")
	}

	s := &Store{
		blob:    blob,
		onError: opts.OnError,
	}
	s.load()

	return s
}

// Add appends d and persists. The id is assumed fresh; collisions are not
// checked.
func (s *Store) Add(d deliverable.Deliverable) {
	s.items = append(s.items, d)
	s.commit()
}

// Update replaces the record with d's id in place. Unknown ids are ignored:
// nothing is written and subscribers are not called.
func (s *Store) Update(d deliverable.Deliverable) {
	idx := slices.IndexFunc(s.items, func(it deliverable.Deliverable) bool { return it.ID == d.ID })
	if idx < 0 {
		return
	}

	s.items[idx] = d
	s.commit()
}

// Delete removes every record with the given id. Duplicates should not exist,
// but if one slipped in, all copies go. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	before := len(s.items)

	s.items = slices.DeleteFunc(s.items, func(it deliverable.Deliverable) bool { return it.ID == id })
	if len(s.items) == before {
		return
	}

	s.commit()
}

// DeleteRecord removes d by id.
func (s *Store) DeleteRecord(d deliverable.Deliverable) {
	s.Delete(d.ID)
}

// Complete marks d as done. Completion is not stored; the record is removed.
func (s *Store) Complete(d deliverable.Deliverable) {
	s.Delete(d.ID)
}

// Get returns the first record with the given id.
func (s *Store) Get(id string) (deliverable.Deliverable, bool) {
	idx := slices.IndexFunc(s.items, func(it deliverable.Deliverable) bool { return it.ID == id })
	if idx < 0 {
		return deliverable.Deliverable{}, false
	}

	return s.items[idx], true
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.items)
}

// All returns a copy of the records in insertion order.
func (s *Store) All() []deliverable.Deliverable {
	return slices.Clone(s.items)
}

// Sorted returns a copy of the records ordered by due time, soonest first.
// Records with equal due times keep their insertion order.
func (s *Store) Sorted() []deliverable.Deliverable {
	out := slices.Clone(s.items)
	slices.SortStableFunc(out, func(a, b deliverable.Deliverable) int {
		return a.DueAt.Compare(b.DueAt)
	})

	return out
}

// Reload discards the in-memory collection and reads the blob again.
// Subscribers are notified once afterwards.
func (s *Store) Reload() {
	s.load()
	s.notify()
}

// Subscribe registers fn to run after every effective mutation, once the
// write has been attempted. The returned func removes the subscription.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *Store) commit() {
	s.save()
	s.notify()
}

func (s *Store) notify() {
	// Copy so a subscriber may unsubscribe while being called.
	for _, sub := range slices.Clone(s.subs) {
		sub.fn()
	}
}

func (s *Store) load() {
	s.items = nil

	data, err := s.blob.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}

		s.report(fmt.Errorf("%w: %w", ErrLoad, err))

		return
	}

	var items []deliverable.Deliverable

	err = json.Unmarshal(data, &items)
	if err != nil {
		s.report(fmt.Errorf("%w: decode: %w", ErrLoad, err))

		return
	}

	s.items = items
}

func (s *Store) save() {
	items := s.items
	if items == nil {
		items = []deliverable.Deliverable{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		s.report(fmt.Errorf("%w: encode: %w", ErrSave, err))

		return
	}

	err = s.blob.Save(append(data, '\n'))
	if err != nil {
		s.report(fmt.Errorf("%w: %w", ErrSave, err))
	}
}

func (s *Store) report(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

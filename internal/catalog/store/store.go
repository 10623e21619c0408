package store

import (
	"sort"
	"sync"

	"docshelf/internal/catalog/model"
	"docshelf/internal/catalog/sorting"
	"docshelf/pkg/logger"
)

// Gateway persists the whole collection as one snapshot.
type Gateway interface {
	Save(docs []model.Document) error
	Load() ([]model.Document, error)
}

// Store is the single source of truth for the document collection and
// its sort/view state. Every mutation notifies subscribers
// synchronously before the mutating call returns. Listeners may read
// the store but must not mutate it mid-notification.
type Store struct {
	mu        sync.Mutex
	gateway   Gateway
	docs      []model.Document
	sortField model.SortField
	sortOrder model.SortOrder
	viewMode  model.ViewMode

	nextListenerID int
	listeners      []listenerEntry
}

type listenerEntry struct {
	id int
	fn func()
}

// New hydrates the store from the gateway once, at construction. A
// failed load is logged and the catalog starts empty.
func New(gw Gateway) *Store {
	s := &Store{
		gateway:   gw,
		sortField: model.SortByCreatedAt,
		sortOrder: model.OrderDesc,
		viewMode:  model.ViewList,
	}
	docs, err := gw.Load()
	if err != nil {
		logger.Sugar.Warnf("Failed to load catalog snapshot, starting empty: %v", err)
		docs = nil
	}
	s.docs = docs
	return s
}

// Documents returns a freshly sorted copy of the collection. The
// result shares nothing with internal storage; callers may mutate it
// freely. Sorting is stable so documents with incomparable versions
// keep their insertion order.
func (s *Store) Documents() []model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Document, len(s.docs))
	for i, d := range s.docs {
		out[i] = d.Clone()
	}
	field, order := s.sortField, s.sortOrder
	sort.SliceStable(out, func(i, j int) bool {
		return sorting.Compare(field, order, out[i], out[j]) < 0
	})
	return out
}

// AddDocument appends doc, persists the collection, and notifies
// subscribers, in that order. A duplicate id is a logged no-op that
// neither persists nor notifies.
func (s *Store) AddDocument(doc model.Document) {
	s.mu.Lock()
	for _, d := range s.docs {
		if d.ID == doc.ID {
			s.mu.Unlock()
			logger.Sugar.Warnf("Document %s already in catalog, ignoring", doc.ID)
			return
		}
	}
	s.docs = append(s.docs, doc.Clone())
	s.persistLocked()
	fns := s.listenersLocked()
	s.mu.Unlock()
	notify(fns)
}

func (s *Store) SetSortField(field model.SortField) {
	s.mu.Lock()
	s.sortField = field
	fns := s.listenersLocked()
	s.mu.Unlock()
	notify(fns)
}

func (s *Store) SetSortOrder(order model.SortOrder) {
	s.mu.Lock()
	s.sortOrder = order
	fns := s.listenersLocked()
	s.mu.Unlock()
	notify(fns)
}

func (s *Store) SetViewMode(mode model.ViewMode) {
	s.mu.Lock()
	s.viewMode = mode
	fns := s.listenersLocked()
	s.mu.Unlock()
	notify(fns)
}

func (s *Store) SortField() model.SortField {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortField
}

func (s *Store) SortOrder() model.SortOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortOrder
}

func (s *Store) ViewMode() model.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

// Subscribe registers a listener invoked on every mutation, in
// subscription order, with no payload. The returned func removes
// exactly that registration.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextListenerID++
	id := s.nextListenerID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// persistLocked writes the full collection snapshot; persistence
// failures are absorbed and logged so the in-memory catalog stays
// usable. Caller holds mu.
func (s *Store) persistLocked() {
	snapshot := make([]model.Document, len(s.docs))
	for i, d := range s.docs {
		snapshot[i] = d.Clone()
	}
	if err := s.gateway.Save(snapshot); err != nil {
		logger.Sugar.Errorf("Failed to persist catalog snapshot: %v", err)
	}
}

func (s *Store) listenersLocked() []func() {
	fns := make([]func(), len(s.listeners))
	for i, l := range s.listeners {
		fns[i] = l.fn
	}
	return fns
}

func notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

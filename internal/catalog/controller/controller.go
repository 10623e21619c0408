package controller

import (
	"errors"

	"docshelf/internal/catalog/model"
	"docshelf/internal/catalog/sorting"
	"docshelf/internal/catalog/store"
	"docshelf/socket"
)

// View is the rendering surface the controller drives. Implementations
// live outside this package.
type View interface {
	Render(docs []model.Document, sortField model.SortField, viewMode model.ViewMode,
		onSort func(model.SortField), onCreate func(), onViewModeChange func(model.ViewMode))
	ShowNotification(message string)
	ShowModal(onSubmit func(model.Document))
}

// Channel is the realtime side of the controller, satisfied by
// *socket.Manager.
type Channel interface {
	OnNotification(fn func(socket.Notification))
	Connect()
	Disconnect()
}

// Controller is the composition root: the only component that talks
// to the store, the sort policy, the channel, and the view together.
type Controller struct {
	store   *store.Store
	view    View
	channel Channel
}

// New wires the collaborators, subscribes to the store, and performs
// the initial render. A missing collaborator is a programmer error,
// not a runtime condition.
func New(st *store.Store, view View, channel Channel) (*Controller, error) {
	if st == nil {
		return nil, errors.New("controller: store is required")
	}
	if view == nil {
		return nil, errors.New("controller: view is required")
	}
	if channel == nil {
		return nil, errors.New("controller: channel is required")
	}
	c := &Controller{store: st, view: view, channel: channel}
	channel.OnNotification(c.handleNotification)
	st.Subscribe(c.render)
	c.render()
	return c, nil
}

func (c *Controller) render() {
	c.view.Render(
		c.store.Documents(),
		c.store.SortField(),
		c.store.ViewMode(),
		c.OnSort,
		c.OnCreate,
		c.OnViewModeChange,
	)
}

// OnSort applies the toggle policy for a clicked column header.
func (c *Controller) OnSort(field model.SortField) {
	next, order := sorting.Toggle(c.store.SortField(), c.store.SortOrder(), field)
	c.store.SetSortField(next)
	c.store.SetSortOrder(order)
}

func (c *Controller) OnViewModeChange(mode model.ViewMode) {
	c.store.SetViewMode(mode)
}

// OnCreate collects a new document through the modal and stores it.
func (c *Controller) OnCreate() {
	c.view.ShowModal(func(doc model.Document) {
		c.store.AddDocument(doc)
		c.view.ShowNotification("Document created: " + doc.Title)
	})
}

// AddDocuments feeds bulk-fetched records into the store; duplicate
// ids are ignored there.
func (c *Controller) AddDocuments(docs []model.Document) {
	for _, d := range docs {
		c.store.AddDocument(d)
	}
}

func (c *Controller) handleNotification(n socket.Notification) {
	doc := FromNotification(n)
	c.store.AddDocument(doc)
	c.view.ShowNotification("Document received: " + doc.Title)
}

// Connect opens the realtime channel.
func (c *Controller) Connect() { c.channel.Connect() }

// Disconnect closes the realtime channel.
func (c *Controller) Disconnect() { c.channel.Disconnect() }

package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docshelf/internal/catalog/model"
	"docshelf/internal/catalog/store"
	"docshelf/socket"
)

type memGateway struct {
	docs []model.Document
}

func (g *memGateway) Load() ([]model.Document, error) { return g.docs, nil }
func (g *memGateway) Save(docs []model.Document) error {
	g.docs = docs
	return nil
}

type stubView struct {
	renders  int
	lastDocs []model.Document
	lastSort model.SortField
	lastMode model.ViewMode
	notices  []string
	modalDoc model.Document
}

func (v *stubView) Render(docs []model.Document, sortField model.SortField, viewMode model.ViewMode,
	onSort func(model.SortField), onCreate func(), onViewModeChange func(model.ViewMode)) {
	v.renders++
	v.lastDocs = docs
	v.lastSort = sortField
	v.lastMode = viewMode
}

func (v *stubView) ShowNotification(message string) {
	v.notices = append(v.notices, message)
}

func (v *stubView) ShowModal(onSubmit func(model.Document)) {
	onSubmit(v.modalDoc)
}

type stubChannel struct {
	handler     func(socket.Notification)
	connects    int
	disconnects int
}

func (c *stubChannel) OnNotification(fn func(socket.Notification)) { c.handler = fn }
func (c *stubChannel) Connect()                                    { c.connects++ }
func (c *stubChannel) Disconnect()                                 { c.disconnects++ }

func newFixture(t *testing.T) (*Controller, *store.Store, *stubView, *stubChannel) {
	t.Helper()
	st := store.New(&memGateway{})
	view := &stubView{}
	channel := &stubChannel{}
	ctrl, err := New(st, view, channel)
	require.NoError(t, err)
	return ctrl, st, view, channel
}

func TestNewRequiresAllCollaborators(t *testing.T) {
	st := store.New(&memGateway{})
	view := &stubView{}
	channel := &stubChannel{}

	_, err := New(nil, view, channel)
	assert.Error(t, err)
	_, err = New(st, nil, channel)
	assert.Error(t, err)
	_, err = New(st, view, nil)
	assert.Error(t, err)
}

func TestInitialRenderOnConstruction(t *testing.T) {
	_, _, view, channel := newFixture(t)
	assert.Equal(t, 1, view.renders)
	assert.NotNil(t, channel.handler)
}

func TestStoreMutationsTriggerRenders(t *testing.T) {
	_, st, view, _ := newFixture(t)

	st.AddDocument(model.Document{ID: "d1", Title: "One"})
	assert.Equal(t, 2, view.renders)
	require.Len(t, view.lastDocs, 1)

	st.SetViewMode(model.ViewGrid)
	assert.Equal(t, 3, view.renders)
	assert.Equal(t, model.ViewGrid, view.lastMode)
}

func TestOnSortTogglesThroughTheStore(t *testing.T) {
	ctrl, st, view, _ := newFixture(t)

	// Default state is createdAt/desc; a new field starts ascending.
	ctrl.OnSort(model.SortByTitle)
	assert.Equal(t, model.SortByTitle, st.SortField())
	assert.Equal(t, model.OrderAsc, st.SortOrder())

	ctrl.OnSort(model.SortByTitle)
	assert.Equal(t, model.OrderDesc, st.SortOrder())

	// Field and order are two mutations, so two notifications each.
	assert.Equal(t, 5, view.renders)
	assert.Equal(t, model.SortByTitle, view.lastSort)
}

func TestOnViewModeChange(t *testing.T) {
	ctrl, st, _, _ := newFixture(t)
	ctrl.OnViewModeChange(model.ViewGrid)
	assert.Equal(t, model.ViewGrid, st.ViewMode())
}

func TestOnCreateStoresModalResult(t *testing.T) {
	ctrl, st, view, _ := newFixture(t)
	view.modalDoc = model.Document{ID: "d9", Title: "Fresh"}

	ctrl.OnCreate()

	docs := st.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "Fresh", docs[0].Title)
	require.Len(t, view.notices, 1)
	assert.Equal(t, "Document created: Fresh", view.notices[0])
}

func TestInboundNotificationBecomesDocument(t *testing.T) {
	_, st, view, channel := newFixture(t)

	channel.handler(socket.Notification{
		Timestamp:     "2024-05-01T09:30:00Z",
		UserID:        "u1",
		UserName:      "Ana",
		DocumentID:    "d1",
		DocumentTitle: "Pushed",
	})

	docs := st.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "Pushed", docs[0].Title)
	require.Len(t, docs[0].Contributors, 1)
	assert.Equal(t, "Ana", docs[0].Contributors[0].Name)
	require.Len(t, view.notices, 1)
	assert.Equal(t, "Document received: Pushed", view.notices[0])
}

func TestDuplicateNotificationDoesNotGrowCatalog(t *testing.T) {
	_, st, _, channel := newFixture(t)

	n := socket.Notification{
		Timestamp:     "2024-05-01T09:30:00Z",
		DocumentID:    "d1",
		DocumentTitle: "Pushed",
	}
	channel.handler(n)
	channel.handler(n)

	assert.Len(t, st.Documents(), 1)
}

func TestAddDocumentsFeedsBulkFetch(t *testing.T) {
	ctrl, st, _, _ := newFixture(t)
	ctrl.AddDocuments([]model.Document{
		{ID: "d1", Title: "One"},
		{ID: "d2", Title: "Two"},
		{ID: "d1", Title: "Dup"},
	})
	assert.Len(t, st.Documents(), 2)
}

func TestConnectDisconnectDelegate(t *testing.T) {
	ctrl, _, _, channel := newFixture(t)
	ctrl.Connect()
	ctrl.Disconnect()
	assert.Equal(t, 1, channel.connects)
	assert.Equal(t, 1, channel.disconnects)
}

func TestFromNotification(t *testing.T) {
	n := socket.Notification{
		Timestamp:     "2024-05-01T09:30:00Z",
		UserID:        "u1",
		UserName:      "Ana",
		DocumentID:    "d1",
		DocumentTitle: "Pushed",
	}
	doc := FromNotification(n)

	assert.Equal(t, "d1", doc.ID)
	assert.Equal(t, "Pushed", doc.Title)
	assert.Equal(t, []model.Contributor{{ID: "u1", Name: "Ana"}}, doc.Contributors)
	assert.False(t, doc.Version.IsSemantic())
	assert.Equal(t, 1, doc.Version.Numeric())
	assert.Empty(t, doc.Attachments)
	want := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	assert.True(t, doc.CreatedAt.Equal(want))
	assert.True(t, doc.UpdatedAt.Equal(want))
}

func TestFromNotificationBadTimestampFallsBackToNow(t *testing.T) {
	doc := FromNotification(socket.Notification{
		Timestamp:  "yesterday-ish",
		DocumentID: "d1",
	})
	assert.WithinDuration(t, time.Now(), doc.CreatedAt, time.Second)
}

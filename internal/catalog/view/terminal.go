package view

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/oklog/ulid/v2"

	"docshelf/internal/catalog/model"
)

// Terminal renders the catalog to a writer and collects commands and
// new documents from a reader. It satisfies controller.View.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader

	onSort           func(model.SortField)
	onCreate         func()
	onViewModeChange func(model.ViewMode)
}

func NewTerminal(out io.Writer, in io.Reader) *Terminal {
	return &Terminal{out: out, in: bufio.NewReader(in)}
}

func (t *Terminal) Render(docs []model.Document, sortField model.SortField, viewMode model.ViewMode,
	onSort func(model.SortField), onCreate func(), onViewModeChange func(model.ViewMode)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.onSort = onSort
	t.onCreate = onCreate
	t.onViewModeChange = onViewModeChange

	fmt.Fprintf(t.out, "\n== Documents (%d) | sort: %s, view: %s ==\n", len(docs), sortField, viewMode)
	if viewMode == model.ViewGrid {
		t.renderGrid(docs)
		return
	}
	t.renderList(docs)
}

func (t *Terminal) renderList(docs []model.Document) {
	w := tabwriter.NewWriter(t.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tVERSION\tCONTRIBUTORS\tATTACHMENTS\tCREATED")
	for _, d := range docs {
		names := make([]string, len(d.Contributors))
		for i, c := range d.Contributors {
			names[i] = c.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			d.Title, d.Version, strings.Join(names, ", "), len(d.Attachments),
			d.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func (t *Terminal) renderGrid(docs []model.Document) {
	const columns = 3
	for i, d := range docs {
		fmt.Fprintf(t.out, "[%-20.20s v%s]  ", d.Title, d.Version)
		if (i+1)%columns == 0 {
			fmt.Fprintln(t.out)
		}
	}
	if len(docs)%columns != 0 {
		fmt.Fprintln(t.out)
	}
}

func (t *Terminal) ShowNotification(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "* %s\n", message)
}

// ShowModal prompts for a title and submits a fresh document. An empty
// title cancels the creation.
func (t *Terminal) ShowModal(onSubmit func(model.Document)) {
	t.mu.Lock()
	fmt.Fprint(t.out, "New document title: ")
	t.mu.Unlock()

	line, err := t.in.ReadString('\n')
	if err != nil {
		return
	}
	title := strings.TrimSpace(line)
	if title == "" {
		return
	}
	now := time.Now()
	onSubmit(model.Document{
		ID:           ulid.Make().String(),
		Title:        title,
		Contributors: []model.Contributor{},
		Version:      model.NumericVersion(1),
		Attachments:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Run reads commands until input closes or the user quits:
//
//	sort <title|version|createdAt>
//	view <list|grid>
//	new
//	quit
func (t *Terminal) Run() {
	for {
		t.mu.Lock()
		fmt.Fprint(t.out, "> ")
		t.mu.Unlock()

		line, err := t.in.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		t.mu.Lock()
		onSort, onCreate, onView := t.onSort, t.onCreate, t.onViewModeChange
		t.mu.Unlock()

		switch fields[0] {
		case "quit", "exit":
			return
		case "new":
			if onCreate != nil {
				onCreate()
			}
		case "sort":
			if len(fields) == 2 {
				if field, ok := model.ParseSortField(fields[1]); ok && onSort != nil {
					onSort(field)
					continue
				}
			}
			t.help()
		case "view":
			if len(fields) == 2 {
				if mode, ok := model.ParseViewMode(fields[1]); ok && onView != nil {
					onView(mode)
					continue
				}
			}
			t.help()
		default:
			t.help()
		}
	}
}

func (t *Terminal) help() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, "commands: sort <title|version|createdAt>, view <list|grid>, new, quit")
}

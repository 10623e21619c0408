package model

import "time"

// SortField is one of the keys the catalog can be ordered by.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByVersion   SortField = "version"
	SortByCreatedAt SortField = "createdAt"
)

// ParseSortField validates a user-supplied field name.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortByTitle, SortByVersion, SortByCreatedAt:
		return SortField(s), true
	}
	return "", false
}

// SortOrder is the traversal direction for the active sort field.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ViewMode is a display preference; it has no effect on entity semantics.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

// ParseViewMode validates a user-supplied mode name.
func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewList, ViewGrid:
		return ViewMode(s), true
	}
	return "", false
}

type Contributor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Document is one catalog entry. ID and CreatedAt never change after
// insertion; the catalog is append-only by identity.
type Document struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Contributors []Contributor `json:"contributors"`
	Version      Version       `json:"version"`
	Attachments  []string      `json:"attachments"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Clone returns a copy that shares no slices with the receiver.
func (d Document) Clone() Document {
	c := d
	if d.Contributors != nil {
		c.Contributors = make([]Contributor, len(d.Contributors))
		copy(c.Contributors, d.Contributors)
	}
	if d.Attachments != nil {
		c.Attachments = make([]string, len(d.Attachments))
		copy(c.Attachments, d.Attachments)
	}
	return c
}

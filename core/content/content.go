package content

import (
	"encoding/json"
	"strings"
)

// SectionType discriminates editable section kinds.
type SectionType string

const (
	SectionText  SectionType = "text"
	SectionImage SectionType = "image"
)

// ImageType tells whether an image path points at a bundled asset or an
// external location.
type ImageType string

const (
	ImageLocal  ImageType = "local"
	ImageRemote ImageType = "remote"
)

// Section is a single editable text or URL unit belonging to a page.
// Value may itself be a placeholder key token (all caps/digits/underscore),
// which signals "unset" rather than real content.
type Section struct {
	ID    string      `json:"id"`
	Type  SectionType `json:"type"`
	Label string      `json:"label"`
	Value string      `json:"value"`
	URL   string      `json:"url,omitempty"`
}

// Image is an editable image slot belonging to a page.
type Image struct {
	ID   string    `json:"id"`
	Path string    `json:"path"`
	Alt  string    `json:"alt"`
	Type ImageType `json:"type,omitempty"`
}

// Page is one page of admin-editable content. The client holds a read-only,
// periodically refreshed snapshot of these.
type Page struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Active   bool      `json:"active"`
	Sections []Section `json:"sections"`
	Images   []Image   `json:"images"`
}

// rawPage mirrors the backend wire shape. The pointer and RawMessage-free
// fields let a partially malformed payload degrade to zero values for the
// bad fields while keeping whatever decoded cleanly.
type rawPage struct {
	PageID   string    `json:"page_id"`
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Active   *bool     `json:"active"`
	Sections []Section `json:"sections"`
	Images   []Image   `json:"images"`
}

// NormalizePages converts raw backend page objects to the canonical Page
// shape: the id comes from page_id or id lower-cased, active defaults to
// true unless the payload carries an explicit boolean, and absent section
// or image lists become empty slices.
func NormalizePages(raw []json.RawMessage) []Page {
	pages := make([]Page, 0, len(raw))
	for _, r := range raw {
		var rp rawPage
		// Decode errors are deliberately ignored: encoding/json fills
		// every field it can before reporting the first bad one, which
		// matches the tolerant normalization the backend contract needs.
		_ = json.Unmarshal(r, &rp)

		id := rp.PageID
		if id == "" {
			id = rp.ID
		}

		p := Page{
			ID:       strings.ToLower(strings.TrimSpace(id)),
			Title:    rp.Title,
			Active:   true,
			Sections: rp.Sections,
			Images:   rp.Images,
		}
		if rp.Active != nil {
			p.Active = *rp.Active
		}
		if p.Sections == nil {
			p.Sections = []Section{}
		}
		if p.Images == nil {
			p.Images = []Image{}
		}
		pages = append(pages, p)
	}
	return pages
}

// FindPage looks a page up by id, case-insensitively.
// It returns nil when the id is blank or no page matches.
func FindPage(pages []Page, id string) *Page {
	if id == "" {
		return nil
	}
	id = strings.ToLower(id)
	for i := range pages {
		if pages[i].ID == id {
			return &pages[i]
		}
	}
	return nil
}

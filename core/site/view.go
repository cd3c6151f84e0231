package site

import (
	"github.com/forsaj/sitecontent/core/content"
	"github.com/forsaj/sitecontent/core/lang"
)

// View is a facade scoped to a single page, so components resolve their own
// sections without repeating the page id on every call.
type View struct {
	svc    *Service
	pageID string
}

// Text resolves display text for a selector on the scoped page.
func (v *View) Text(sel content.Selector, def string) string {
	return v.svc.Text(v.pageID, sel, def)
}

// Image resolves an image slot on the scoped page.
func (v *View) Image(sel content.Selector, defPath string) content.Image {
	return v.svc.Image(v.pageID, sel, defPath)
}

// URL resolves a section url on the scoped page.
func (v *View) URL(sel content.Selector, defURL string) string {
	return v.svc.URL(v.pageID, sel, defURL)
}

// Page returns the scoped page from the current snapshot, or nil.
func (v *View) Page() *content.Page {
	return v.svc.GetPage(v.pageID)
}

// Language returns the current display language.
func (v *View) Language() lang.Language {
	return v.svc.Language()
}

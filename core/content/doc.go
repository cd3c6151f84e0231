// Package content defines the admin-editable content model and the
// resolution chain that turns a semantic key into display text, an image or
// a url for the selected language.
//
// # Model
//
// The backend CMS owns a tree of pages, each carrying editable text/url
// sections and image slots keyed by opaque string ids. The client holds a
// read-only snapshot of []Page, refreshed periodically by core/snapshot.
//
// # Resolution
//
// Lookups address a section either by key or by position, expressed as a
// Selector:
//
//	content.ResolveSection(page.Sections, content.ByKey("STAT_1"), lang.AZ, "0")
//	content.ResolveSection(page.Sections, content.ByIndex(2), lang.AZ, "")
//
// Keyed lookups expand the key into an ordered candidate list (see
// core/lang), normalize every candidate (see core/token) and scan section
// ids and labels. A miss falls back to matching the caller's default
// against stored values, and finally to the default itself. Values that
// are merely placeholder tokens mirroring their own lookup key resolve to
// the default, so internal tokens never reach end users.
package content

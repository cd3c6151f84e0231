package content

import (
	"strings"

	"github.com/forsaj/sitecontent/core/lang"
	"github.com/forsaj/sitecontent/core/token"
)

// findSection runs the primary lookup: direct indexing for positional
// selectors, otherwise a scan comparing every normalized language candidate
// against each section's normalized id, normalized label, and the
// "KEY: {candidate}" label form some seeded content uses.
func findSection(sections []Section, sel Selector, l lang.Language) (Section, bool) {
	if i, ok := sel.Index(); ok {
		if i < 0 || i >= len(sections) {
			return Section{}, false
		}
		return sections[i], true
	}

	key, _ := sel.Key()
	candidates := lang.Candidates(key, l)
	if len(candidates) == 0 {
		return Section{}, false
	}
	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = token.Normalize(c)
	}

	for _, s := range sections {
		id := token.Normalize(s.ID)
		label := token.Normalize(s.Label)
		for _, c := range normalized {
			if id == c || label == c || label == token.Normalize("KEY: "+c) {
				return s, true
			}
		}
	}
	return Section{}, false
}

// findByValue is the secondary pass used when the keyed lookup misses: any
// section whose normalized value or label equals the normalized default is
// taken. This supports content seeded by matching on default copy rather
// than on key.
func findByValue(sections []Section, def string) (Section, bool) {
	target := token.Normalize(def)
	if target == "" {
		return Section{}, false
	}
	for _, s := range sections {
		if token.Normalize(s.Value) == target || token.Normalize(s.Label) == target {
			return s, true
		}
	}
	return Section{}, false
}

// ResolveSection resolves the display text for a selector against a page's
// sections, falling through the whole chain: primary lookup, value-based
// fallback against the default, then the default itself. A found value that
// is merely a placeholder token mirroring one of its own lookup candidates
// is suppressed in favor of the default so internal tokens never leak to
// end users. Whitespace-only values count as absent.
func ResolveSection(sections []Section, sel Selector, l lang.Language, def string) string {
	s, ok := findSection(sections, sel, l)
	if !ok {
		if _, byIndex := sel.Index(); !byIndex && strings.TrimSpace(def) != "" {
			s, ok = findByValue(sections, def)
		}
	}
	if !ok {
		return def
	}

	value := s.Value
	if token.IsKeyToken(value) {
		for _, c := range lang.Candidates(sel.String(), l) {
			if strings.EqualFold(strings.TrimSpace(value), c) {
				return def
			}
		}
	}
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// ResolveImage resolves an image slot. Positional selectors index directly;
// keyed selectors match on normalized id. When the lookup misses but the
// page has at least one configured image, the first image wins over the
// hardcoded default: any admin-configured image beats fallback art.
func ResolveImage(images []Image, sel Selector, defPath string) Image {
	if i, ok := sel.Index(); ok {
		if i >= 0 && i < len(images) {
			return images[i]
		}
	} else {
		key, _ := sel.Key()
		nk := token.Normalize(key)
		for _, img := range images {
			if token.Normalize(img.ID) == nk {
				return img
			}
		}
	}

	if len(images) > 0 {
		first := images[0]
		if first.Path == "" {
			first.Path = defPath
		}
		return first
	}
	return Image{Path: defPath}
}

// ResolveURL resolves the url field of a section. Unlike text resolution it
// applies neither the value-based fallback nor placeholder suppression; a
// missing section or empty url yields the default.
func ResolveURL(sections []Section, sel Selector, l lang.Language, defURL string) string {
	s, ok := findSection(sections, sel, l)
	if !ok || s.URL == "" {
		return defURL
	}
	return s.URL
}

// Package snapshot fetches and caches the site content tree from the
// backend CMS.
//
// The Client prefers the structured endpoint and extracts the site-content
// resource from its payload; any failure there silently falls back to the
// flat endpoint, and only a flat failure reaches the caller. The Cache
// time-boxes the snapshot (10s by default) and coalesces concurrent
// fetches into one network call. A failed refresh keeps the previous
// snapshot serving, so backend trouble degrades to stale content rather
// than a blank site.
package snapshot

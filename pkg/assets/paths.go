// Package assets resolves asset paths against a root URL and provides the components
// that read and write assets through a ports.AssetStore.
//
// A root URL only namespaces locations: an asset path resolves to an absolute URL under
// the root, and the part of that URL below the root is the store location.
package assets

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultRootURL is the root of readers and writers that were never given one.
const DefaultRootURL = "file:///"

// NormalizeRootURL strips the query of raw, makes it a directory and resolves it against
// base. An empty base means DefaultRootURL.
func NormalizeRootURL(raw, base string) (string, error) {
	if base == "" {
		base = DefaultRootURL
	}
	raw, _, _ = strings.Cut(raw, "?")
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	b, err := url.Parse(stripQuery(base))
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid root URL %q: %w", raw, err)
	}
	root := b.ResolveReference(u).ResolveReference(&url.URL{Path: "."})
	return root.String(), nil
}

// Resolve returns the absolute URL of uri relative to root.
func Resolve(uri, root string) (string, error) {
	r, err := url.Parse(root)
	if err != nil {
		return "", fmt.Errorf("invalid root URL %q: %w", root, err)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid asset path %q: %w", uri, err)
	}
	return r.ResolveReference(u).String(), nil
}

// Locate returns the store location of uri: its resolved URL relative to root.
func Locate(uri, root string) (string, error) {
	abs, err := Resolve(uri, root)
	if err != nil {
		return "", err
	}
	rest, ok := strings.CutPrefix(stripQuery(abs), root)
	if !ok || rest == "" {
		return "", fmt.Errorf("asset path %q is outside root %q", uri, root)
	}
	location, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("invalid asset path %q: %w", uri, err)
	}
	return location, nil
}

// FileName strips the directory components of uri.
func FileName(uri string) string {
	if uri == "/" {
		return uri
	}
	return uri[strings.LastIndex(uri, "/")+1:]
}

func stripQuery(s string) string {
	s, _, _ = strings.Cut(s, "?")
	return s
}

// Package document provides the Document component: a graph component owning the
// node tree of one scene document, and the entry point for reading and writing it.
//
// A Document creates its root Scene node on construction. Open validates and
// inflates a document into the inner graph, either replacing the tree or merging
// into an existing node. Deflate serializes the tree back. The document title is
// taken from the first meta that finishes loading.
package document

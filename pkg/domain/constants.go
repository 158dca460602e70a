package domain

// Asset stamp written into every deflated document.
const (
	MimeType  = "application/si-dpo-3d.document+json"
	Version   = "1.0"
	Generator = "Voyager"
	Copyright = "(c) Smithsonian Institution. All rights reserved."
)

// DocumentSuffix is the conventional file suffix of scene documents.
const DocumentSuffix = ".svx.json"

// DefaultDownloadName is used when a document has no asset path to derive a file name from.
const DefaultDownloadName = "voyager-document.json"

/*
Package ports defines the driven ports (interfaces) of the Voyager document engine.

These interfaces decouple the data model and codec from transport and storage, so the
same document components work against a local directory, Redis, or a remote asset
server.

# Key Interfaces

  - AssetStore: reads and writes asset payloads (documents, text) by location.
  - DocumentValidator: checks a document against the versioned document schema.
  - Downloader: hands a serialized document to the user under a file name.
  - DistributedLocker: serializes writes to one location across processes.
*/
package ports

/*
Package voyager is a scene data-model and serialization engine for 3D documents.

A scene is a graph of nodes carrying components. Components expose typed ports that
can be linked so that outputs drive inputs, and the system updates only components
whose inputs changed. Scene documents are JSON files in a glTF-like layout; the
engine inflates them into a node tree and deflates the tree back, eliding default
values so that an unmodified document round-trips to the same bytes.

# Architecture

The library follows a hexagonal layout:

  - pkg/graph: ports, components, nodes, graphs and the tick loop.
  - pkg/scene: the scene components and the document codec.
  - pkg/document: the Document component owning one node tree.
  - pkg/ports: the collaborator interfaces (asset stores, validators, downloaders).
  - pkg/adapters: memory, file, Redis and HTTP asset stores and the OpenAPI validator.

# Usage

	eng, err := voyager.New(voyager.WithStore(file.New("./scenes")))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	doc, err := eng.Open(ctx, "bust/bust.svx.json")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(doc.Title())

	if err := eng.Save(ctx, doc, nil, "bust/bust-copy.svx.json"); err != nil {
		log.Fatal(err)
	}

Observability is attached with WithLifecycleHooks; see package observability for
ready-made log and Prometheus hooks.
*/
package voyager

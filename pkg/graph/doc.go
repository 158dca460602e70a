/*
Package graph implements the live object model of a scene document: a System owns a
root Graph of Nodes, Nodes carry Components, and Components expose typed input and output
Ports that propagate values along links.

# Ports

Ports are declared per component type as PortSchema values and instantiated per
component instance. All ports of a System live in one arena (Network); links are stored
as directed edges between arena indices, so a released port leaves no dangling references
and cycles are rejected when a link is made.

# Update protocol

System.Tick walks every graph depth-first and calls Update on each component that has
never been updated or has at least one changed input. After Update returns, the
component's input change flags are cleared. Output flags are cleared at the end of the
tick.

# Composition

A GraphComponent owns an inner Graph; disposing the component disposes every node of
its inner graph. Transforms link nodes into a parent/child hierarchy that never spans
graphs.
*/
package graph

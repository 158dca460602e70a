// Package schema provides the value type system behind graph ports and meta collections.
//
// A Type validates a single value; a Schema maps field names to Types so that loosely
// typed data (decoded JSON collections) can be checked before it enters the graph.
//
//	s := schema.Schema{
//	    "title": schema.String(),
//	    "tags":  schema.Slice(schema.String()),
//	}
//	if err := schema.ValidatePresent(s, collection); err != nil {
//	    // reject the collection
//	}
//
// Vector types check element count as well as element type:
//
//	schema.Vector(3).Validate([]float64{0, 1, 0}) // ok
//	schema.Vector(3).Validate([]float64{0, 1})    // error
package schema

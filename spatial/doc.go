// Package spatial wraps a bulk-insertable 2D point index behind the single
// operation the engine actually needs: does any indexed point fall inside a
// query rectangle.
//
// The underlying structure is github.com/dhconnelly/rtreego's R-tree
// (quadratic-split, configurable branching factor), treated as an opaque
// spatial index primitive. Nothing above this package needs to know it's
// an R-tree; a different bulk-loadable point index could be dropped in
// behind the same Index type.
package spatial

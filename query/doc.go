// Package query implements the query driver: it parses lines of the form
// "nid xlo ylo xhi yhi", resolves the node's responsible
// spatial index through a Fabric, and reports whether any indexed point
// lies in the query box. It also accumulates the running statistics the
// engine reports at shutdown: query count, true-answer count, and total
// wall-time.
package query

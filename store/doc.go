// Package store maps Collections to and from their on-disk layout.
//
// A Collection owns two directory trees. Below collection_root every
// Directory is a directory and every Table is one file:
//
//	<collection_root>/<dir>/.../<table>.xml
//
// Saved Searches live below searches_root, one directory per Table:
//
//	<searches_root>/<dir>/.../<table>/<search>.xml
//
// CSV samples mirror the table layout under a separate root:
//
//	<csvs_root>/<dir>/.../<table>.csv
//
// Every path component is the codec.ToFileName encoding of a node name.
//
// A partial load reads only the directory structure and creates stub
// Tables; Materialize reads a stub's file on demand. A full load
// materializes every Table as it goes. Both produce the same nodes in the
// same order, the os.ReadDir order of the encoded names.
package store

// Package dump turns class-file structures into a generic document tree and
// renders it for people and tools.
//
// Build walks a node with classfile.Walk and records, for each structure,
// its name, encoded length and scalar fields in encoding order. The
// resulting Doc renders as indented text, as YAML with ordered keys, or as
// CBOR using core deterministic encoding, so equal structures always
// produce identical bytes.
//
//	doc, err := dump.Build(attr)
//	fmt.Print(dump.Text(doc, dump.TextOptions{}))
//	out, err := dump.YAML(doc)
//	bin, err := dump.CBOR(doc)
package dump

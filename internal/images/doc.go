// Package images resolves image references in a document to files on disk
// and copies them into the output directory under sequential names.
//
// Two token forms are recognized, in a single pass in document order:
//
//	![[name.png]]          wiki embed
//	![[name.png|alias]]    wiki embed with alt text
//	![alt](path%20x.png)   standard image, path percent-decoded
//
// Every token is rewritten to ![alt](images/img_NNN.ext) and consumes exactly
// one sequence number, whether or not its source file is found. Sources are
// searched in a prioritized list of roots (see SearchRoots) and, as a last
// resort, in a bounded breadth-first walk of each root.
package images

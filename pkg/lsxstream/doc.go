// Package lsxstream provides a forward-only element cursor over LSX documents.
// It can skip whole subtrees without building them and materialize selected
// subtrees into etree elements for recursive processing.
package lsxstream

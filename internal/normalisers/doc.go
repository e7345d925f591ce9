// Package normalisers contains text extraction implementations for the
// document formats the engine accepts. Each subpackage handles one family
// of formats and satisfies the driven.TextExtractor port.
package normalisers

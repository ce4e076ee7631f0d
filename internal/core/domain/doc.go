// Package domain defines the core business entities for litarchive.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Work: An Author paired with the Analysis of one literary piece
//   - Analysis: Title, optional year, genre, themes, motifs, characters
//   - Corpus: The immutable, ordered collection of works
//   - AppSettings: Resolved application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

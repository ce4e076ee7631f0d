// Package corpus provides file-based corpus loaders.
//
// Two payload shapes are accepted in both JSON and YAML:
//
//   - a bare list of works: [{author, analysis}, ...]
//   - a processed envelope: {generated_date, works: [{work_name, author, analysis}, ...]}
//
// In the envelope, work_name stands in for analysis.name when the latter is
// empty. Loaders only decode; invariants are checked when the corpus is built.
//
// Open picks a loader from the file extension. SQLite payloads are served by
// the storage/sqlite adapter.
package corpus

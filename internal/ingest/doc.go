// Package ingest loads list records from text, YAML and JSON files and
// generates synthetic records for demos and benchmarks.
package ingest

// Package dataprocessing implements the roster ingestion pipeline: fuzzy
// header resolution, follower-count parsing, platform detection, row
// normalization into domain.Profile records, and selection analytics over
// normalized profiles.
//
// Everything in this package is synchronous and pure over in-memory rows.
// Decoding spreadsheet bytes into rows belongs to internal/decoder;
// persistence belongs to internal/store. Malformed cells never abort an
// import: unparseable values degrade to zero/empty fields and the row is
// still produced.
package dataprocessing

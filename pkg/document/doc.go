// Package document reads and writes design documents. Documents are JSON or
// YAML files holding a named design and its ordered component blocks; label
// and description text is sanitised on load so previews can embed it safely.
package document

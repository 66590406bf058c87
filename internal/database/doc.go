// Package database provides the SQLite corpus store for pwcheck.
//
// A word list such as rockyou.txt is decoded, trimmed and deduplicated once
// by ImportCorpus and kept in a single database file. Later runs build a
// corpus.Index straight from the table instead of re-reading the text file.
//
// The store uses modernc.org/sqlite, so pwcheck stays CGO-free. Evaluation
// results are never written here.
package database

// Package authdb is a password-authentication record store layered over a
// relational database.
//
// A Store keeps one credential record per (group, user) pair in a single
// table, verifies passwords against stored one-way digests, and exposes
// CRUD-style access to the profile fields of each record (full name, email,
// challenge question/answer). Group names act as namespaces: the same user
// name may exist in any number of groups, tracked independently.
//
// The store speaks plain database/sql and supports two backends: an embedded
// local-file engine (SQLite via modernc.org/sqlite) and a networked
// client-server engine (PostgreSQL via the pgx stdlib driver). Every
// value-bearing statement is parameterized; only the fixed table identifier
// is interpolated into statement text.
//
// authdb is a library, not a protocol: callers integrate it into their own
// authentication flow.
package authdb

// Package library is the logic layer over the game catalog cache: bulk
// refresh from the Steam Web API, fuzzy name lookup, and the miss fallback
// that searches the live storefront and inserts the result.
//
// A refresh fetches per-game details on a bounded worker pool; merges are
// additive and keyed by appid, so completion order never affects the final
// state, and one failed fetch marks only its own entry retry-eligible. The
// fallback path runs at most one live search per distinct missing name at a
// time, so concurrent lookups for the same game share a single upstream call.
//
// A single lookup never produces an unrecoverable failure: callers receive a
// found entry, ErrNotFound, or a wrapped transient error.
package library

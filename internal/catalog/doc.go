// Package catalog owns the on-disk representation of the Steam game catalog
// cache: a single JSON file mapping appid to per-game metadata (genres, short
// description, refresh timestamps, and retry state for failed fetches).
//
// # Storage
//
// The cache lives at a configurable path (default:
// ~/.cache/gamebot/games_cache.json). Saves are atomic (temp file + rename)
// and every mutating operation is preceded by a backup to <path>.bak. A
// malformed or truncated file never crashes the process; Load substitutes an
// empty cache at the current schema version and logs a warning.
//
// Cross-process writers are serialized through a flock lock file next to the
// cache, so a long-running bot and ad hoc CLI invocations cannot interleave
// partial writes.
package catalog

// Package steam provides access to the Steam Web API and storefront endpoints
// gamebot consumes: the owned-game list, per-app genre/description details, and
// the catalog search used by the lookup fallback.
//
// The upstream is treated as slow, rate-limited, and occasionally incomplete.
// Every request carries a context and a bounded timeout; HTTP 429 surfaces as
// ErrRateLimited and a confirmed miss as ErrNotFound so callers can tell a
// retry-eligible failure from a definitive one.
package steam

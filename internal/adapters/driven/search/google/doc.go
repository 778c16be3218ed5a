// Package google implements driven.SearchProvider with the Google
// Programmable Search Engine (Custom Search JSON API).
//
// Each query returns at most ten results. Provider failures are mapped onto
// the domain search errors so callers can tell an outage from throttling:
//   - network failures and timeouts wrap domain.ErrSearchUnavailable
//   - HTTP 429 and quota errors wrap domain.ErrRateLimited
//   - other non-2xx statuses and malformed payloads wrap domain.ErrProviderResponse
package google

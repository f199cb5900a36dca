/*
Package resilience provides the circuit breaker used by the desktop API client.

A breaker counts failed calls and, once ReadyToTrip says so, rejects further
calls with ErrCircuitOpen until Timeout elapses. It then admits MaxRequests
trial requests; enough successes close it again and any failure reopens it.

IsFailure decides what counts against the breaker. The API client only counts
transport errors and 5xx responses, so a caller asking for an unknown window
never trips it.

# Usage

	breaker := resilience.New("webdesk-api", resilience.Settings{
		Timeout: 5 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	snapshot, err := resilience.Do(breaker, func() (types.WindowSnapshot, error) {
		return fetch(ctx, id)
	})

Calls are never retried here; a rejected call returns immediately.

	Closed --[trip]-> Open --[timeout]-> Half-Open --[trials succeed]-> Closed
	                    ^                    |
	                    +-----[failure]------+
*/
package resilience

package constants

const (
	ListRecentEvents = `
	SELECT id, event_id, type, airplane_id, flight_id, passenger, admin,
	       destination, status, total_seats, amount, occurred_at, created_at
	FROM ledger_events ORDER BY occurred_at DESC LIMIT $1
	`

	ListFlightEvents = `
	SELECT id, event_id, type, airplane_id, flight_id, passenger, admin,
	       destination, status, total_seats, amount, occurred_at, created_at
	FROM ledger_events WHERE flight_id = $1 ORDER BY occurred_at DESC LIMIT $2
	`
)

package constants

const (
	// Stream the event worker publishes ledger notifications to.
	LedgerEventStream = "skyledger:events"

	// Default page size for journal reads.
	DefaultEventLimit = 50
)

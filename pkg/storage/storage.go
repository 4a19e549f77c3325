package storage

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on the
// more granular interfaces (PoolStore, SettlementStateStore, etc.) instead of this one.
type Storage interface {
	PoolStore
	DistributionStore
	TicketLedger
	DrawReader
	SettlementStateStore
	SettlementStore
}

// EngineStore is everything the pool engine reads and writes.
type EngineStore interface {
	PoolStore
	DistributionStore
	DrawReader
	SettlementStore
}

// SettlerStore is everything the settlement worker reads and writes.
type SettlerStore interface {
	TicketLedger
	DrawReader
	SettlementStateStore
}

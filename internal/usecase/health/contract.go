package health

import "context"

// DBPinger checks alias store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EngineProber runs a self-test of the ranking engine.
type EngineProber interface {
	Probe() error
}

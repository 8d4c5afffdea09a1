package chord

import (
	"context"
	"math/big"
)

// PeerClient is the outbound peer-call abstraction (spec §4.5). The routing
// engine and the maintenance loops only ever see this interface — never a
// socket, an HTTP client, or a serialization detail — so tests can swap in
// an in-memory implementation and drive multi-node scenarios deterministically
// in a single process (spec §9, "Remote dispatch").
//
// Every method may fail with a network error; callers never inspect the
// error further than its apperrors code (e.g. CodeUnreachable) (spec §4.5,
// §7).
type PeerClient interface {
	FindSuccessor(ctx context.Context, addr string, id *big.Int) (Peer, error)
	GetPredecessor(ctx context.Context, addr string) (Peer, error)
	Notify(ctx context.Context, addr string, self Peer) error
}

// Dispatcher is the inbound surface a node exposes to peers (spec §4.6): the
// same three operations, handled locally instead of placed over the wire.
// A transport adapter (internal/transport/httprpc) wraps a Dispatcher to
// answer requests arriving from PeerClient callers elsewhere in the ring.
type Dispatcher interface {
	FindSuccessor(ctx context.Context, id *big.Int) (Peer, error)
	GetPredecessor(ctx context.Context) (Peer, error)
	Notify(ctx context.Context, p Peer) error
}

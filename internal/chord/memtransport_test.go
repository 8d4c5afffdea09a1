package chord

import (
	"context"
	"math/big"
	"sync"

	"github.com/chris-alexander-pop/chord-ring/internal/apperrors"
)

// memTransport is an in-memory PeerClient that dispatches directly to
// registered Dispatchers by address, letting tests drive multi-node ring
// scenarios deterministically in one process (spec §9: "Separate them ...
// tests substitute an in-memory peer-call implementation").
type memTransport struct {
	mu     sync.RWMutex
	peers  map[string]Dispatcher
	downed map[string]bool
}

func newMemTransport() *memTransport {
	return &memTransport{
		peers:  make(map[string]Dispatcher),
		downed: make(map[string]bool),
	}
}

func (t *memTransport) register(addr string, d Dispatcher) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.peers[addr] = d
}

func (t *memTransport) down(addr string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.downed[addr] = true
}

func (t *memTransport) lookup(addr string) (Dispatcher, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.downed[addr] {
		return nil, apperrors.Unreachable("connection refused", nil)
	}
	d, ok := t.peers[addr]
	if !ok {
		return nil, apperrors.Unreachable("no such peer", nil)
	}
	return d, nil
}

func (t *memTransport) FindSuccessor(ctx context.Context, addr string, id *big.Int) (Peer, error) {
	d, err := t.lookup(addr)
	if err != nil {
		return Empty(), err
	}
	return d.FindSuccessor(ctx, id)
}

func (t *memTransport) GetPredecessor(ctx context.Context, addr string) (Peer, error) {
	d, err := t.lookup(addr)
	if err != nil {
		return Empty(), err
	}
	return d.GetPredecessor(ctx)
}

func (t *memTransport) Notify(ctx context.Context, addr string, self Peer) error {
	d, err := t.lookup(addr)
	if err != nil {
		return err
	}
	return d.Notify(ctx, self)
}

var _ PeerClient = (*memTransport)(nil)

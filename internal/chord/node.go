// Package chord implements the ring membership and routing engine of a
// single Chord node: identifier assignment, the successor/predecessor
// invariants, the finger table, the remote operations peers invoke on one
// another, and the three concurrent maintenance loops that repair the ring
// under joins and failures. The concrete RPC transport, key/value storage,
// and the operator console are external collaborators — see
// internal/transport/httprpc and cmd/node for how they're wired around this
// package.
package chord

import (
	"context"
	"log/slog"
	"sync"
)

// Node is one Chord ring participant. It is constructed with New and then
// brought into a valid state with CreateRing or JoinRing before Start is
// called. Node is safe for concurrent use by its own maintenance loops, the
// inbound dispatcher, and any number of inspection readers.
type Node struct {
	cfg    Config
	st     *state
	client PeerClient
	log    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs a node identified by cfg.Addr(), wired to the given
// outbound peer-call client. The node is not yet part of any ring: call
// CreateRing or JoinRing, then Start.
func New(cfg Config, client PeerClient, log *slog.Logger) *Node {
	addr := cfg.Addr()
	self := Peer{ID: HashID(addr, cfg.M), Address: addr}
	return &Node{
		cfg:    cfg,
		st:     newState(self, cfg.M),
		client: client,
		log:    log,
	}
}

// Self returns this node's own peer handle.
func (n *Node) Self() Peer { return n.st.Self() }

// Start launches the three maintenance loops. It must be called exactly once
// after the ring has been formed via CreateRing or joined via JoinRing.
func (n *Node) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	n.cancel = cancel

	n.wg.Add(3)
	go n.runStabilize(ctx)
	go n.runFixFingers(ctx)
	go n.runCheckPredecessor(ctx)
}

// Shutdown signals every maintenance loop to stop and blocks until they have
// (spec §5: "clean shutdown must cause each loop to exit within one
// period"). The inbound dispatcher is not owned by Node and is not joined
// here — its owner (cmd/node) shuts it down separately.
func (n *Node) Shutdown() {
	n.st.setShutdown()
	if n.cancel != nil {
		n.cancel()
	}
	n.wg.Wait()
}

// Inspection accessors (spec §4.8, §6): non-blocking reads of
// snapshot-consistent peer handles, used by any operator surface built on
// top of this package.

func (n *Node) Successor() Peer     { return n.st.Successor() }
func (n *Node) Predecessor() Peer   { return n.st.Predecessor() }
func (n *Node) Fingers() []Peer     { return n.st.Fingers() }
func (n *Node) IsShutdown() bool    { return n.st.Shutdown() }
func (n *Node) M() int              { return n.cfg.M }
func (n *Node) Replicas() int       { return n.cfg.Replicas }
func (n *Node) FingerAt(i int) Peer { return n.st.Finger(i) }

var _ Dispatcher = (*Node)(nil)

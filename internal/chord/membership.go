package chord

import (
	"context"
	"fmt"
)

// CreateRing forms a new singleton ring: predecessor is empty, successor is
// self (spec §4.3).
func (n *Node) CreateRing() {
	n.st.setPredecessor(Empty())
	n.st.setSuccessor(n.st.Self())
}

// JoinRing joins an existing ring through bootstrap, a peer already on it.
// predecessor starts empty; successor is whatever bootstrap currently
// believes is the successor of this node's id — not necessarily correct, but
// stabilize converges it (spec §4.3).
func (n *Node) JoinRing(ctx context.Context, bootstrap string) error {
	n.st.setPredecessor(Empty())

	successor, err := n.client.FindSuccessor(ctx, bootstrap, n.st.Self().ID)
	if err != nil {
		return fmt.Errorf("join via %s: %w", bootstrap, err)
	}
	n.st.setSuccessor(successor)
	return nil
}

// Notify is the remote handler a peer invokes to hint "I believe I am your
// predecessor" (spec §4.3). It accepts the claim only if this node's
// predecessor is unknown or p is strictly closer than the current one,
// which is what makes it safe under concurrent claimants: the arc test
// accepts only a monotone improvement (spec §5).
func (n *Node) Notify(ctx context.Context, p Peer) error {
	current := n.st.Predecessor()
	if current.IsEmpty() || belongsTo(p.ID, plusOne(current.ID, n.cfg.M), minusOne(n.st.Self().ID, n.cfg.M)) {
		n.st.setPredecessor(p)
	}
	return nil
}

// GetPredecessor is the remote handler returning this node's current
// predecessor, possibly the sentinel (spec §4.3).
func (n *Node) GetPredecessor(ctx context.Context) (Peer, error) {
	return n.st.Predecessor(), nil
}

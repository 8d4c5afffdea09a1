package chord

import (
	"context"
	"math/big"

	"github.com/chris-alexander-pop/chord-ring/internal/apperrors"
)

// FindSuccessor resolves the live node responsible for id (spec §4.2). It is
// called both locally (by maintenance loops) and remotely (through the
// Dispatcher a transport adapter wraps around this node).
func (n *Node) FindSuccessor(ctx context.Context, id *big.Int) (Peer, error) {
	snap := n.st.snapshot()

	if belongsTo(id, plusOne(snap.self.ID, n.cfg.M), snap.successor.ID) {
		return snap.successor, nil
	}

	next := n.closestPrecedingNode(snap, id)
	if next.Equal(snap.self) {
		// Degenerate/bootstrap case: no finger or successor narrows the arc
		// further than we already have. Returning self here is what stops
		// the recursion from looping forever (spec §4.2).
		return snap.self, nil
	}

	succ, err := n.client.FindSuccessor(ctx, next.Address, id)
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) && appErr.Code == apperrors.CodeUnreachable {
			// next (which may be the cached successor itself, not just a
			// finger) is unreachable mid-lookup. Returning self stops the
			// recursion the same way the degenerate case above does, rather
			// than looping or propagating a failure the caller can't act on.
			return snap.self, nil
		}
		return Peer{}, err
	}
	return succ, nil
}

// closestPrecedingNode scans the finger table from m-1 down to 0 and returns
// the highest-index entry whose id lies strictly between self and id,
// descending so the largest valid jump is always taken first (spec §4.2).
func (n *Node) closestPrecedingNode(snap snapshot, id *big.Int) Peer {
	lower := plusOne(snap.self.ID, n.cfg.M)
	upper := minusOne(id, n.cfg.M)

	for i := len(snap.finger) - 1; i >= 0; i-- {
		f := snap.finger[i]
		if f.IsEmpty() || f.Address == snap.self.Address {
			continue
		}
		if belongsTo(f.ID, lower, upper) {
			return f
		}
	}
	return snap.self
}

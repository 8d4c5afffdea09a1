package chord

import "math/big"

// Peer is a handle to a node on the ring: its identifier and the socket
// address an RPC can be placed against. Peer values are immutable and are
// passed by value everywhere in the core so a reader never observes a torn
// (id, address) pair.
type Peer struct {
	ID      *big.Int
	Address string
}

// emptyPeer is the sentinel "unknown" handle: id = -1, address = "". It must
// never satisfy a membership predicate.
var emptyPeer = Peer{ID: big.NewInt(-1), Address: ""}

// Empty returns the sentinel peer handle.
func Empty() Peer {
	return emptyPeer
}

// IsEmpty reports whether p is the sentinel handle.
func (p Peer) IsEmpty() bool {
	return p.Address == "" || p.ID == nil || p.ID.Sign() < 0
}

// Equal reports whether two peer handles refer to the same node.
func (p Peer) Equal(other Peer) bool {
	if p.IsEmpty() || other.IsEmpty() {
		return p.IsEmpty() == other.IsEmpty()
	}
	return p.Address == other.Address && p.ID.Cmp(other.ID) == 0
}

package chord

import (
	"log/slog"
	"math/big"
	"sort"
	"time"
)

// newFixedIDNode builds a Node whose identifier is fixed to id rather than
// derived from hashing addr, so scenario tests (spec §8) can reproduce the
// exact ring layouts the spec's worked examples describe.
func newFixedIDNode(id int64, addr string, m int, client PeerClient) *Node {
	cfg := Config{
		M:                        m,
		Host:                     addr,
		StabilizeInterval:        time.Second,
		FixFingersInterval:       time.Second,
		CheckPredecessorInterval: time.Second,
		CallTimeout:              time.Second,
	}
	self := Peer{ID: big.NewInt(id), Address: addr}
	n := &Node{
		cfg:    cfg,
		st:     newState(self, m),
		client: client,
		log:    slog.Default(),
	}
	return n
}

// bruteForceSuccessor returns the smallest id in ids that is >= target on
// the ring, wrapping to the smallest id overall if none is.
func bruteForceSuccessor(ids []int64, target int64, m int) int64 {
	space := int64(1) << uint(m)
	target %= space

	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for _, id := range sorted {
		if id >= target {
			return id
		}
	}
	return sorted[0]
}

// buildStableRing wires up nodes with the given ids on an in-memory
// transport, with successor pointers and finger tables already converged —
// i.e. the state stabilize would eventually reach — so routing tests can
// exercise find_successor without waiting on the maintenance loops.
func buildStableRing(ids []int64, m int) (map[int64]*Node, *memTransport) {
	transport := newMemTransport()
	nodes := make(map[int64]*Node, len(ids))

	addrOf := func(id int64) string {
		return addrForID(id)
	}

	for _, id := range ids {
		n := newFixedIDNode(id, addrOf(id), m, transport)
		nodes[id] = n
		transport.register(n.Self().Address, n)
	}

	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for i, id := range sorted {
		succ := sorted[(i+1)%len(sorted)]
		nodes[id].st.setSuccessor(nodes[succ].Self())
		pred := sorted[(i-1+len(sorted))%len(sorted)]
		nodes[id].st.setPredecessor(nodes[pred].Self())

		for f := 0; f < m; f++ {
			target := addPow2(big.NewInt(id), f, m)
			succID := bruteForceSuccessor(ids, target.Int64(), m)
			nodes[id].st.setFinger(f, nodes[succID].Self())
		}
	}

	return nodes, transport
}

func addrForID(id int64) string {
	return "node-" + big.NewInt(id).String() + ":0"
}

package chord

import (
	"math/big"
	"testing"

	"github.com/chris-alexander-pop/chord-ring/internal/testutil"
)

type MembershipSuite struct {
	*testutil.Suite
}

func TestMembershipSuite(t *testing.T) {
	testutil.Run(t, &MembershipSuite{Suite: testutil.NewSuite()})
}

func (s *MembershipSuite) TestCreateRingSingleton() {
	const m = 6
	transport := newMemTransport()
	n := newFixedIDNode(7, "node-7:0", m, transport)
	transport.register(n.Self().Address, n)

	n.CreateRing()

	s.AssertPeerEqual(n.Self(), n.Successor())
	s.True(n.Predecessor().IsEmpty())
}

// S3: node 20 joins via bootstrap 10 into a ring already containing {10,40}.
// After one full stabilize round (new node first, so its notify reaches its
// bootstrap-derived successor before that successor's own pointers move),
// the successor chain is 10->20->40->10.
func (s *MembershipSuite) TestJoinConvergesScenarioS3() {
	const m = 6
	transport := newMemTransport()

	n10 := newFixedIDNode(10, "node-10:0", m, transport)
	n40 := newFixedIDNode(40, "node-40:0", m, transport)
	transport.register(n10.Self().Address, n10)
	transport.register(n40.Self().Address, n40)

	n10.st.setSuccessor(n40.Self())
	n10.st.setPredecessor(n40.Self())
	n40.st.setSuccessor(n10.Self())
	n40.st.setPredecessor(n10.Self())

	n20 := newFixedIDNode(20, "node-20:0", m, transport)
	transport.register(n20.Self().Address, n20)

	s.Require().NoError(n20.JoinRing(s.Ctx, "node-10:0"))
	s.Equal(0, n20.Successor().ID.Cmp(big.NewInt(40)))
	s.True(n20.Predecessor().IsEmpty())

	n20.stabilizeOnce(s.Ctx)
	n10.stabilizeOnce(s.Ctx)
	n40.stabilizeOnce(s.Ctx)

	s.Equal(0, n10.Successor().ID.Cmp(big.NewInt(20)), "10's successor")
	s.Equal(0, n20.Successor().ID.Cmp(big.NewInt(40)), "20's successor")
	s.Equal(0, n40.Successor().ID.Cmp(big.NewInt(10)), "40's successor")

	s.Equal(0, n10.Predecessor().ID.Cmp(big.NewInt(40)))
	s.Equal(0, n20.Predecessor().ID.Cmp(big.NewInt(10)))
	s.Equal(0, n40.Predecessor().ID.Cmp(big.NewInt(20)))
}

// S5: notify(30, {id:20}) is accepted when 30's predecessor was empty or id
// 10; rejected (predecessor stays 25) when 30's predecessor was already 25.
func (s *MembershipSuite) TestNotifyScenarioS5() {
	const m = 6
	transport := newMemTransport()
	n30 := newFixedIDNode(30, "node-30:0", m, transport)
	transport.register(n30.Self().Address, n30)
	n30.CreateRing()

	claimant20 := Peer{ID: big.NewInt(20), Address: "node-20:0"}
	s.NoError(n30.Notify(s.Ctx, claimant20))
	s.AssertPeerEqual(claimant20, n30.Predecessor())

	claimant10 := Peer{ID: big.NewInt(10), Address: "node-10:0"}
	n30.st.setPredecessor(claimant10)
	s.NoError(n30.Notify(s.Ctx, claimant20))
	s.AssertPeerEqual(claimant20, n30.Predecessor())

	claimant25 := Peer{ID: big.NewInt(25), Address: "node-25:0"}
	n30.st.setPredecessor(claimant25)
	s.NoError(n30.Notify(s.Ctx, claimant20))
	s.AssertPeerEqual(claimant25, n30.Predecessor(), "predecessor must remain 25")
}

func (s *MembershipSuite) TestGetPredecessorReturnsSentinelWhenEmpty() {
	const m = 6
	transport := newMemTransport()
	n := newFixedIDNode(7, "node-7:0", m, transport)
	transport.register(n.Self().Address, n)
	n.CreateRing()

	p, err := n.GetPredecessor(s.Ctx)
	s.NoError(err)
	s.True(p.IsEmpty())
}

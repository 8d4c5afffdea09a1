package chord

import (
	"context"
	"time"

	"github.com/chris-alexander-pop/chord-ring/internal/apperrors"
)

// runStabilize repairs successor/predecessor agreement every
// StabilizeInterval (spec §4.4). A singleton ring (successor == self) is
// well-defined: step 1 fetches this node's own predecessor and step 3
// notifies itself.
func (n *Node) runStabilize(ctx context.Context) {
	defer n.wg.Done()
	ticker := time.NewTicker(n.cfg.StabilizeInterval)
	defer ticker.Stop()

	for {
		n.stabilizeOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (n *Node) stabilizeOnce(ctx context.Context) {
	successor := n.st.Successor()
	if successor.IsEmpty() {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, n.cfg.CallTimeout)
	x, err := n.client.GetPredecessor(callCtx, successor.Address)
	cancel()
	if err != nil {
		n.logRecoverable("stabilize: get_predecessor failed", successor.Address, err)
		return
	}

	self := n.st.Self()
	if !x.IsEmpty() && belongsTo(x.ID, plusOne(self.ID, n.cfg.M), minusOne(successor.ID, n.cfg.M)) {
		successor = x
		n.st.setSuccessor(successor)
	}

	callCtx, cancel = context.WithTimeout(ctx, n.cfg.CallTimeout)
	err = n.client.Notify(callCtx, successor.Address, self)
	cancel()
	if err != nil {
		n.logRecoverable("stabilize: notify failed", successor.Address, err)
	}
}

// runFixFingers refreshes one finger table entry per tick, round-robin
// (spec §4.4).
func (n *Node) runFixFingers(ctx context.Context) {
	defer n.wg.Done()
	ticker := time.NewTicker(n.cfg.FixFingersInterval)
	defer ticker.Stop()

	for {
		n.fixFingersOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (n *Node) fixFingersOnce(ctx context.Context) {
	i := n.st.nextFingerIndex(n.cfg.M)
	target := addPow2(n.st.Self().ID, i, n.cfg.M)

	callCtx, cancel := context.WithTimeout(ctx, n.cfg.CallTimeout)
	successor, err := n.FindSuccessor(callCtx, target)
	cancel()
	if err != nil {
		n.logRecoverable("fix_fingers: find_successor failed", n.st.Self().Address, err)
		return
	}
	n.st.setFinger(i, successor)
}

// runCheckPredecessor probes the current predecessor for liveness every
// CheckPredecessorInterval and clears it on a hard connection failure
// (spec §4.4).
func (n *Node) runCheckPredecessor(ctx context.Context) {
	defer n.wg.Done()
	ticker := time.NewTicker(n.cfg.CheckPredecessorInterval)
	defer ticker.Stop()

	for {
		n.checkPredecessorOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (n *Node) checkPredecessorOnce(ctx context.Context) {
	predecessor := n.st.Predecessor()
	if predecessor.IsEmpty() {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, n.cfg.CallTimeout)
	_, err := n.client.GetPredecessor(callCtx, predecessor.Address)
	cancel()
	if err == nil {
		return
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) && appErr.Code == apperrors.CodeUnreachable {
		n.st.setPredecessor(Empty())
		n.log.Warn("predecessor unreachable, cleared", "peer", predecessor.Address)
		return
	}
	// Transient/malformed failures are logged but, per spec §4.4's strict
	// reading, only a hard refusal is treated as death.
	n.logRecoverable("check_predecessor probe failed", predecessor.Address, err)
}

func (n *Node) logRecoverable(msg, addr string, err error) {
	n.log.Debug(msg, "peer", addr, "error", err)
}

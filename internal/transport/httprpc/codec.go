// Package httprpc is the concrete peer-call transport: a small JSON-over-HTTP
// client/server pair that implements chord.PeerClient on the outbound side
// and adapts chord.Dispatcher to HTTP routes on the inbound side (spec §4.5,
// §4.6, §6). The chord package itself never imports this one — it only sees
// the PeerClient/Dispatcher interfaces, so an alternative transport (gRPC,
// length-framed binary, the source's XML-RPC) could replace this package
// without touching the ring engine.
package httprpc

import (
	"math/big"

	"github.com/chris-alexander-pop/chord-ring/internal/chord"
)

// peerDTO is the wire representation of a chord.Peer: {id, socket_address}
// exactly as spec §6 defines it. The sentinel empty peer serializes as
// id = "-1", socket_address = "".
type peerDTO struct {
	ID            string `json:"id"`
	SocketAddress string `json:"socket_address"`
}

func toDTO(p chord.Peer) peerDTO {
	if p.IsEmpty() {
		return peerDTO{ID: "-1", SocketAddress: ""}
	}
	return peerDTO{ID: p.ID.String(), SocketAddress: p.Address}
}

func parseID(raw string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(raw, 10)
	if !ok || id.Sign() < 0 {
		return nil, errMalformedID
	}
	return id, nil
}

func fromDTO(d peerDTO) (chord.Peer, error) {
	if d.SocketAddress == "" {
		return chord.Empty(), nil
	}
	id, ok := new(big.Int).SetString(d.ID, 10)
	if !ok {
		return chord.Peer{}, errMalformedID
	}
	if id.Sign() < 0 {
		return chord.Empty(), nil
	}
	return chord.Peer{ID: id, Address: d.SocketAddress}, nil
}

type findSuccessorRequest struct {
	ID string `json:"id"`
}

type findSuccessorResponse struct {
	Peer peerDTO `json:"peer"`
}

type notifyRequest struct {
	Peer peerDTO `json:"peer"`
}

type notifyResponse struct {
	OK bool `json:"ok"`
}

type getPredecessorResponse struct {
	Peer peerDTO `json:"peer"`
}

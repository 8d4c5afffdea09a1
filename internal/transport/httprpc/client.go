package httprpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/google/uuid"

	"github.com/chris-alexander-pop/chord-ring/internal/apperrors"
	"github.com/chris-alexander-pop/chord-ring/internal/chord"
)

// Client is the HTTP implementation of chord.PeerClient: every call opens a
// short-lived request to a peer's socket address, bounded by the caller's
// context and by the wrapped http.Client's own Timeout, if any (spec §4.5 —
// the maintenance loops pass a context.WithTimeout'd context here; a
// FindSuccessor forwarded on behalf of an inbound request carries that
// request's context).
//
// Each outbound call carries its own correlation id (an uuid.New(), spec's
// DOMAIN STACK wiring for request tracing) in the X-Request-Id header, which
// the peer's inbound request log line records. The client itself does not
// log the id.
type Client struct {
	http *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient}
}

var _ chord.PeerClient = (*Client)(nil)

func (c *Client) FindSuccessor(ctx context.Context, addr string, id *big.Int) (chord.Peer, error) {
	var resp findSuccessorResponse
	err := c.do(ctx, addr, "/chord/find-successor", findSuccessorRequest{ID: id.String()}, &resp)
	if err != nil {
		return chord.Peer{}, err
	}
	return fromDTO(resp.Peer)
}

func (c *Client) GetPredecessor(ctx context.Context, addr string) (chord.Peer, error) {
	var resp getPredecessorResponse
	if err := c.do(ctx, addr, "/chord/predecessor", nil, &resp); err != nil {
		return chord.Peer{}, err
	}
	return fromDTO(resp.Peer)
}

func (c *Client) Notify(ctx context.Context, addr string, self chord.Peer) error {
	var resp notifyResponse
	return c.do(ctx, addr, "/chord/notify", notifyRequest{Peer: toDTO(self)}, &resp)
}

func (c *Client) do(ctx context.Context, addr, path string, body, out any) error {
	url := "http://" + addr + path
	method := http.MethodGet
	var reader io.Reader
	if body != nil {
		method = http.MethodPost
		buf, err := json.Marshal(body)
		if err != nil {
			return apperrors.Malformed("encoding outbound request", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return apperrors.Internal("building outbound request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.Transient(fmt.Sprintf("call to %s timed out", addr), err)
		}
		return apperrors.Unreachable(fmt.Sprintf("call to %s failed", addr), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return apperrors.Unreachable(fmt.Sprintf("%s reported unavailable", addr), nil)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return apperrors.Transient(fmt.Sprintf("%s returned %d", addr, resp.StatusCode), nil)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return apperrors.Malformed(fmt.Sprintf("%s rejected request: %d", addr, resp.StatusCode), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Malformed("decoding response from "+addr, err)
	}
	return nil
}

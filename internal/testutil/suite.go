// Package testutil wraps testify's suite for this repo's tests, adapted
// from the teacher library's pkg/test/suite.go, plus a ring-domain assertion
// every chord and httprpc suite in this repo asserts through.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/chris-alexander-pop/chord-ring/internal/chord"
)

// Suite adds a ready-to-use context to testify's suite.Suite.
type Suite struct {
	suite.Suite
	Ctx context.Context
}

func (s *Suite) SetupTest() {
	s.Ctx = context.Background()
}

// NewSuite creates a new test suite.
func NewSuite() *Suite {
	return &Suite{}
}

func (s *Suite) Assert() *assert.Assertions {
	return s.Assertions
}

// AssertPeerEqual reports a failure unless want and got are the same ring
// peer, printing both id and address rather than testify's default struct
// dump — a *big.Int field otherwise prints as its internal representation,
// not the decimal id a ring scenario is described in terms of.
func (s *Suite) AssertPeerEqual(want, got chord.Peer, msgAndArgs ...any) bool {
	return s.Truef(want.Equal(got), "want peer {id=%s addr=%s}, got {id=%s addr=%s}: %v",
		want.ID, want.Address, got.ID, got.Address, msgAndArgs)
}

// Run runs a suite from a standard Test* function.
func Run(t *testing.T, s suite.TestingSuite) {
	suite.Run(t, s)
}

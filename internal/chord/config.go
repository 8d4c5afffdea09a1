package chord

import (
	"strconv"
	"time"
)

// Config is the control-plane's immutable-after-construction description of
// a node. It is populated by internal/config.Load before the node is built
// and never mutated afterward.
type Config struct {
	// M is the identifier-space exponent: ids live in [0, 2^M). The
	// reference network value is 10.
	M int `env:"CHORD_M" env-default:"10" validate:"gte=1,lte=256"`

	// Replicas is the replication parameter accepted for forward
	// compatibility with a storage layer. The core reads it but never
	// exercises it — see spec §9's "r is read but unused" note.
	Replicas int `env:"CHORD_REPLICAS" env-default:"1" validate:"gte=1"`

	// Host and Port make up this node's advertised socket address,
	// host:port, the exact string hashed by HashID.
	Host string `env:"CHORD_HOST" env-default:"127.0.0.1" validate:"required"`
	Port int    `env:"CHORD_PORT" env-default:"9000" validate:"gte=1,lte=65535"`

	// Bootstrap is the address of an existing ring member to join through.
	// Empty means create_ring: this node forms a new singleton ring.
	Bootstrap string `env:"CHORD_BOOTSTRAP" env-default:""`

	StabilizeInterval        time.Duration `env:"CHORD_STABILIZE_INTERVAL" env-default:"2s"`
	FixFingersInterval       time.Duration `env:"CHORD_FIX_FINGERS_INTERVAL" env-default:"1s"`
	CheckPredecessorInterval time.Duration `env:"CHORD_CHECK_PREDECESSOR_INTERVAL" env-default:"2s"`

	// CallTimeout bounds every outbound peer call so a hung peer can never
	// block a maintenance loop past its own period.
	CallTimeout time.Duration `env:"CHORD_CALL_TIMEOUT" env-default:"1500ms"`
}

// Addr returns the host:port string this node advertises and hashes.
func (c Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

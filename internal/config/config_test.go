package config

import (
	"testing"

	"github.com/chris-alexander-pop/chord-ring/internal/chord"
	"github.com/chris-alexander-pop/chord-ring/internal/testutil"
)

type ConfigSuite struct {
	*testutil.Suite
}

func TestConfigSuite(t *testing.T) {
	testutil.Run(t, &ConfigSuite{Suite: testutil.NewSuite()})
}

func (s *ConfigSuite) TestValidateRingConfigAllowsEmptyBootstrap() {
	cfg := chord.Config{Host: "127.0.0.1", Port: 9000}
	s.NoError(ValidateRingConfig(cfg))
}

func (s *ConfigSuite) TestValidateRingConfigAllowsDistinctBootstrap() {
	cfg := chord.Config{Host: "127.0.0.1", Port: 9000, Bootstrap: "127.0.0.1:9001"}
	s.NoError(ValidateRingConfig(cfg))
}

func (s *ConfigSuite) TestValidateRingConfigRejectsSelfBootstrap() {
	cfg := chord.Config{Host: "127.0.0.1", Port: 9000, Bootstrap: "127.0.0.1:9000"}
	s.Error(ValidateRingConfig(cfg))
}

package prep

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

var ErrBadConfig = errors.New("invalid run config")

// ToolConfig describes how to invoke one external program.
type ToolConfig struct {
	Cmd  string   `toml:"cmd"`  // executable name or path
	Args []string `toml:"args"` // leading arguments, before the generated ones
}

// Config is the TOML run configuration naming the external collaborators.
// The evaluator scores alignment columns; the builder infers a supported
// tree. Both print their result on stdout (one score per line for the
// evaluator, a single newick tree for the builder).
type Config struct {
	Evaluator ToolConfig `toml:"evaluator"`
	Builder   ToolConfig `toml:"builder"`
	Model     string     `toml:"model"`   // substitution model passed to the builder
	Workdir   string     `toml:"workdir"` // scratch dir for per-round artifacts; temp dir if empty
}

// LoadConfig reads and validates a TOML run configuration. The builder
// command is always required; the evaluator may be omitted when precomputed
// scores are supplied on the command line, so it is validated by the caller.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config %s, %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w, %s: %s", ErrBadConfig, path, err.Error())
	}
	if cfg.Builder.Cmd == "" {
		return nil, fmt.Errorf("%w, %s: missing builder command", ErrBadConfig, path)
	}
	return &cfg, nil
}

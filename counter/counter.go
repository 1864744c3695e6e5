// Package counter keeps the per-directory and global counter state the
// pattern evaluator deliberately does not own. The CLI advances counters once
// per input path, before evaluation, and hands the values to the EvalContext.
package counter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidConfig is returned when an "init:step" counter string does not
// parse.
var ErrInvalidConfig = errors.New("invalid counter configuration")

// Config describes one counter: its first value and its increment.
type Config struct {
	Init uint64 `yaml:"init"`
	Step uint64 `yaml:"step"`
}

// DefaultConfig counts 1, 2, 3, ...
func DefaultConfig() Config {
	return Config{Init: 1, Step: 1}
}

// ParseConfig parses "init", "init:step" or ":step". Empty parts keep the
// defaults. A zero step is rejected because it would produce the same value
// forever.
func ParseConfig(spec string) (Config, error) {
	cfg := DefaultConfig()

	if spec == "" {
		return cfg, nil
	}

	initPart, stepPart, hasStep := strings.Cut(spec, ":")

	if initPart != "" {
		init, err := strconv.ParseUint(initPart, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %q", ErrInvalidConfig, spec)
		}

		cfg.Init = init
	}

	if hasStep && stepPart != "" {
		step, err := strconv.ParseUint(stepPart, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %q", ErrInvalidConfig, spec)
		}

		cfg.Step = step
	}

	if cfg.Step == 0 {
		return Config{}, fmt.Errorf("%w: step must not be zero", ErrInvalidConfig)
	}

	return cfg, nil
}

// Source produces counter values for a sequence of input paths. The local
// counter is keyed by the path's parent directory and restarts at Init for
// each new directory; the global counter advances for every path.
type Source struct {
	localCfg  Config
	globalCfg Config
	locals    map[string]uint64
	global    uint64
	started   bool
}

// NewSource creates a counter source with independent local and global
// configurations.
func NewSource(local, global Config) *Source {
	return &Source{
		localCfg:  local,
		globalCfg: global,
		locals:    make(map[string]uint64),
	}
}

// Next advances both counters for path and returns their new values. The
// first path of a directory yields the local Init; the first path overall
// yields the global Init.
func (s *Source) Next(path string) (local, global uint64) {
	dir := filepath.Dir(path)

	if value, ok := s.locals[dir]; ok {
		s.locals[dir] = value + s.localCfg.Step
	} else {
		s.locals[dir] = s.localCfg.Init
	}

	if s.started {
		s.global += s.globalCfg.Step
	} else {
		s.global = s.globalCfg.Init
		s.started = true
	}

	return s.locals[dir], s.global
}

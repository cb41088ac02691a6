// Package mars implements the MARS (Memory Array Redcode Simulator)
// execution engine: the core loader and the cycle-by-cycle interpreter.
package mars

import (
	"github.com/BurntSushi/toml"

	"github.com/lookbusy1344/mars-emulator/redcode"
)

// SeparationKind selects how the loader spaces consecutive warrior starts.
type SeparationKind int

const (
	SeparationRandom SeparationKind = iota
	SeparationFixed
)

// Separation is the loader's placement policy: Fixed(n) places every
// warrior exactly n cells after the previous one; Random(min) rejects
// candidate placements at a ring distance of min cells or less from any
// previously placed warrior.
type Separation struct {
	Kind          SeparationKind
	Fixed         int
	MinSeparation int
}

// InitialInstructionMode selects how the loader fills untouched core cells.
type InitialInstructionMode int

const (
	InitialInstructionFixed InitialInstructionMode = iota
	InitialInstructionRandom
)

// EngineConfig holds every tunable named in spec.md §6.4.
type EngineConfig struct {
	CoreSize              int
	CyclesBeforeTie       int
	InstructionLimit      int
	MaximumNumberOfTasks  int
	ReadDistance          int
	WriteDistance         int
	Separation            Separation
	InitialInstructionMode InitialInstructionMode
	FixedInitialInstruction CoreInstruction
}

// NewEngineConfig returns the documented defaults: core size 8000, cycle
// limit 80000, Random(100) separation, Fixed(DAT.F #0,#0) initial
// instruction, per-warrior instruction limit 100, task cap 8000, and
// read/write distance equal to the core size.
func NewEngineConfig() EngineConfig {
	return EngineConfig{
		CoreSize:             8000,
		CyclesBeforeTie:      80000,
		InstructionLimit:     100,
		MaximumNumberOfTasks: 8000,
		ReadDistance:         8000,
		WriteDistance:        8000,
		Separation: Separation{
			Kind:          SeparationRandom,
			MinSeparation: 100,
		},
		InitialInstructionMode:  InitialInstructionFixed,
		FixedInitialInstruction: defaultInitialInstruction(),
	}
}

func defaultInitialInstruction() CoreInstruction {
	return CoreInstruction{
		Opcode:   redcode.DAT,
		Modifier: redcode.ModF,
		Mode1:    redcode.Immediate,
		Mode2:    redcode.Immediate,
	}
}

// tomlEngineConfig is the on-disk shape loaded via BurntSushi/toml: a plain
// nested struct decoded directly from file, then translated into the
// richer in-memory EngineConfig.
type tomlEngineConfig struct {
	CoreSize             int `toml:"core_size"`
	CyclesBeforeTie      int `toml:"cycles_before_tie"`
	InstructionLimit     int `toml:"instruction_limit"`
	MaximumNumberOfTasks int `toml:"maximum_number_of_tasks"`
	ReadDistance         int `toml:"read_distance"`
	WriteDistance        int `toml:"write_distance"`

	Separation struct {
		Mode          string `toml:"mode"` // "fixed" or "random"
		Fixed         int    `toml:"fixed"`
		MinSeparation int    `toml:"min_separation"`
	} `toml:"separation"`

	InitialInstruction struct {
		Mode string `toml:"mode"` // "fixed" or "random"
	} `toml:"initial_instruction"`
}

// LoadConfigFile reads a TOML configuration file, falling back to
// NewEngineConfig's defaults for any field the file omits.
func LoadConfigFile(path string) (EngineConfig, error) {
	cfg := NewEngineConfig()

	var raw tomlEngineConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return EngineConfig{}, err
	}

	if raw.CoreSize > 0 {
		cfg.CoreSize = raw.CoreSize
	}
	if raw.CyclesBeforeTie > 0 {
		cfg.CyclesBeforeTie = raw.CyclesBeforeTie
	}
	if raw.InstructionLimit > 0 {
		cfg.InstructionLimit = raw.InstructionLimit
	}
	if raw.MaximumNumberOfTasks > 0 {
		cfg.MaximumNumberOfTasks = raw.MaximumNumberOfTasks
	}
	if raw.ReadDistance > 0 {
		cfg.ReadDistance = raw.ReadDistance
	} else {
		cfg.ReadDistance = cfg.CoreSize
	}
	if raw.WriteDistance > 0 {
		cfg.WriteDistance = raw.WriteDistance
	} else {
		cfg.WriteDistance = cfg.CoreSize
	}

	switch raw.Separation.Mode {
	case "fixed":
		cfg.Separation = Separation{Kind: SeparationFixed, Fixed: raw.Separation.Fixed}
	case "random", "":
		minSep := raw.Separation.MinSeparation
		if minSep == 0 {
			minSep = 100
		}
		cfg.Separation = Separation{Kind: SeparationRandom, MinSeparation: minSep}
	}

	switch raw.InitialInstruction.Mode {
	case "random":
		cfg.InitialInstructionMode = InitialInstructionRandom
	case "fixed", "":
		cfg.InitialInstructionMode = InitialInstructionFixed
	}

	return cfg, nil
}

package mars

import (
	"math/rand"
	"time"

	"github.com/lookbusy1344/mars-emulator/redcode"
)

// CoreBuilder places warriors into a fresh Core and produces a ready-to-run
// Engine, grounded on original_source/src/core/corebuilder.rs's
// CoreBuilder. Unlike that original, Random separation is fully
// implemented here rather than left as a stub.
type CoreBuilder struct {
	cfg EngineConfig
	rng *rand.Rand
}

// NewCoreBuilder returns a builder for cfg, seeded from the current time.
// Call WithSeed for reproducible placement in tests.
func NewCoreBuilder(cfg EngineConfig) *CoreBuilder {
	return &CoreBuilder{cfg: cfg, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// WithSeed fixes the random source used for Random separation, returning
// the same builder for chaining.
func (b *CoreBuilder) WithSeed(seed int64) *CoreBuilder {
	b.rng = rand.New(rand.NewSource(seed))
	return b
}

// namedWarrior pairs a resolved warrior with the name used in loader error
// messages.
type namedWarrior struct {
	name string
	w    *redcode.Warrior
}

// Build validates and places every warrior, then returns an Engine ready
// to run a match. Warriors are placed in the order given: the first at
// offset 0, each subsequent one per the configured separation policy.
func (b *CoreBuilder) Build(warriors []*redcode.Warrior) (*Engine, error) {
	if b.cfg.InitialInstructionMode == InitialInstructionRandom {
		return nil, ErrRandomInitialInstructionUnsupported
	}

	size := b.cfg.CoreSize
	named := make([]namedWarrior, len(warriors))
	for i, w := range warriors {
		name := w.Metadata.Name
		if name == "" {
			name = warriorDefaultName(i)
		}
		named[i] = namedWarrior{name: name, w: w}

		if len(w.Instructions) == 0 {
			return nil, &LoaderError{Kind: ErrEmptyWarrior, Warrior: name}
		}
		if len(w.Instructions) > b.cfg.InstructionLimit {
			return nil, &LoaderError{Kind: ErrWarriorTooLong, Warrior: name, Length: len(w.Instructions), Limit: b.cfg.InstructionLimit}
		}
	}

	placements, err := b.placeWarriors(named, size)
	if err != nil {
		return nil, err
	}

	core := newCore(size, b.cfg.FixedInitialInstruction)
	queues := make([]*taskQueue, len(named))

	for i, nw := range named {
		offset := placements[i]
		for j, ni := range nw.w.Instructions {
			core.set(offset+j, fromNormalized(ni, size))
		}
		startPC := wrapMod(offset+nw.w.StartOffset, size)
		queues[i] = &taskQueue{warriorIndex: i, name: nw.name, pcs: []int{startPC}}
	}

	return newEngine(core, queues, b.cfg), nil
}

func warriorDefaultName(i int) string {
	return "warrior-" + itoaPublic(i)
}

// itoaPublic avoids importing strconv for a single call site, matching the
// rest of this package's preference for small hand-rolled formatting.
func itoaPublic(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func (b *CoreBuilder) placeWarriors(named []namedWarrior, size int) ([]int, error) {
	placements := make([]int, len(named))
	if len(named) == 0 {
		return placements, nil
	}
	placements[0] = 0

	switch b.cfg.Separation.Kind {
	case SeparationFixed:
		for i := 1; i < len(named); i++ {
			placements[i] = wrapMod(placements[i-1]+b.cfg.Separation.Fixed, size)
		}
	default: // SeparationRandom
		min := b.cfg.Separation.MinSeparation
		for i := 1; i < len(named); i++ {
			placements[i] = b.sampleFarEnough(placements[:i], min, size)
		}
	}
	return placements, nil
}

// sampleFarEnough rejection-samples a candidate offset whose ring distance
// to every placement in existing exceeds min, per spec.md §4.5.
func (b *CoreBuilder) sampleFarEnough(existing []int, min, size int) int {
	for {
		candidate := b.rng.Intn(size)
		ok := true
		for _, p := range existing {
			if ringDistance(candidate, p, size) <= min {
				ok = false
				break
			}
		}
		if ok {
			return candidate
		}
	}
}

// ringDistance is the shorter of the two circular gaps between a and b.
func ringDistance(a, b, n int) int {
	d := wrapMod(a-b, n)
	if n-d < d {
		d = n - d
	}
	return d
}

package mars

import (
	"testing"

	"github.com/lookbusy1344/mars-emulator/redcode"
)

func impWarrior(name string) *redcode.Warrior {
	return &redcode.Warrior{
		Metadata: redcode.Metadata{Name: name},
		Instructions: []redcode.NormalizedInstruction{
			{Opcode: redcode.MOV, Modifier: redcode.ModI, Mode1: redcode.Direct, Addr1: 0, Mode2: redcode.Direct, Addr2: 1},
		},
	}
}

func TestBuildRejectsEmptyWarrior(t *testing.T) {
	cfg := NewEngineConfig()
	empty := &redcode.Warrior{Metadata: redcode.Metadata{Name: "empty"}}
	_, err := NewCoreBuilder(cfg).Build([]*redcode.Warrior{empty})
	if err == nil {
		t.Fatal("expected an EmptyWarrior error")
	}
	le, ok := err.(*LoaderError)
	if !ok || le.Kind != ErrEmptyWarrior {
		t.Errorf("expected ErrEmptyWarrior, got %v", err)
	}
}

func TestBuildRejectsWarriorTooLong(t *testing.T) {
	cfg := NewEngineConfig()
	cfg.InstructionLimit = 2
	tooLong := impWarrior("too-long")
	tooLong.Instructions = append(tooLong.Instructions, tooLong.Instructions[0], tooLong.Instructions[0])
	_, err := NewCoreBuilder(cfg).Build([]*redcode.Warrior{tooLong})
	if err == nil {
		t.Fatal("expected a WarriorTooLong error")
	}
	le, ok := err.(*LoaderError)
	if !ok || le.Kind != ErrWarriorTooLong {
		t.Errorf("expected ErrWarriorTooLong, got %v", err)
	}
}

func TestBuildFixedSeparationPlacesAtExactOffsets(t *testing.T) {
	cfg := NewEngineConfig()
	cfg.CoreSize = 100
	cfg.Separation = Separation{Kind: SeparationFixed, Fixed: 10}

	engine, err := NewCoreBuilder(cfg).Build([]*redcode.Warrior{impWarrior("a"), impWarrior("b")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := engine.core.at(0).Opcode; got != redcode.MOV {
		t.Errorf("cell 0 opcode = %v, want MOV (warrior a at offset 0)", got)
	}
	if got := engine.core.at(10).Opcode; got != redcode.MOV {
		t.Errorf("cell 10 opcode = %v, want MOV (warrior b at offset 10)", got)
	}
}

func TestBuildRandomSeparationRespectsMinimum(t *testing.T) {
	cfg := NewEngineConfig()
	cfg.CoreSize = 8000
	cfg.Separation = Separation{Kind: SeparationRandom, MinSeparation: 100}

	warriors := make([]*redcode.Warrior, 6)
	for i := range warriors {
		warriors[i] = impWarrior(itoaPublic(i))
	}

	builder := NewCoreBuilder(cfg).WithSeed(42)
	placements, err := builder.placeWarriors(namedWarriorsFor(warriors), cfg.CoreSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range placements {
		for j := range placements {
			if i == j {
				continue
			}
			if d := ringDistance(placements[i], placements[j], cfg.CoreSize); d <= cfg.Separation.MinSeparation {
				t.Errorf("placements %d (%d) and %d (%d) are %d apart, want > %d", i, placements[i], j, placements[j], d, cfg.Separation.MinSeparation)
			}
		}
	}
}

func namedWarriorsFor(warriors []*redcode.Warrior) []namedWarrior {
	named := make([]namedWarrior, len(warriors))
	for i, w := range warriors {
		named[i] = namedWarrior{name: w.Metadata.Name, w: w}
	}
	return named
}

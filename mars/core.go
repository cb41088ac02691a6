package mars

import (
	"github.com/lookbusy1344/mars-emulator/redcode"
)

// CoreInstruction is the in-core representation the engine operates on.
// Unlike redcode.NormalizedInstruction, its addresses are always already
// folded into [0, core size).
type CoreInstruction struct {
	Opcode   redcode.Opcode
	Modifier redcode.Modifier
	Mode1    redcode.AddressMode
	Addr1    int
	Mode2    redcode.AddressMode
	Addr2    int
}

func (ci CoreInstruction) String() string {
	return redcode.NormalizedInstruction{
		Opcode:   ci.Opcode,
		Modifier: ci.Modifier,
		Mode1:    ci.Mode1,
		Addr1:    ci.Addr1,
		Mode2:    ci.Mode2,
		Addr2:    ci.Addr2,
	}.String()
}

func fromNormalized(ni redcode.NormalizedInstruction, coreSize int) CoreInstruction {
	return CoreInstruction{
		Opcode:   ni.Opcode,
		Modifier: ni.Modifier,
		Mode1:    ni.Mode1,
		Addr1:    wrapMod(ni.Addr1, coreSize),
		Mode2:    ni.Mode2,
		Addr2:    wrapMod(ni.Addr2, coreSize),
	}
}

// wrapMod reduces a possibly-negative offset into [0, n).
func wrapMod(x, n int) int {
	r := x % n
	if r < 0 {
		r += n
	}
	return r
}

// fold maps ptr into the addressable window of width limit centered on the
// current instruction, then re-expresses it as an absolute core offset.
// Contract (spec.md §4.6): result is in [0, coreSize); when limit equals
// coreSize this degenerates to plain modular reduction.
func fold(ptr, limit, coreSize int) int {
	r := wrapMod(ptr, limit)
	if r > limit/2 {
		r += coreSize - limit
	}
	return r
}

// decrementAddress wraps a pre-decrement: 0 wraps to n-1.
func decrementAddress(ptr, n int) int {
	if ptr == 0 {
		return n - 1
	}
	return ptr - 1
}

// Core is the circular memory of normalized instructions shared by every
// warrior in a match.
type Core struct {
	cells []CoreInstruction
}

func newCore(size int, fill CoreInstruction) *Core {
	cells := make([]CoreInstruction, size)
	for i := range cells {
		cells[i] = fill
	}
	return &Core{cells: cells}
}

func (c *Core) size() int { return len(c.cells) }

func (c *Core) at(addr int) CoreInstruction {
	return c.cells[wrapMod(addr, len(c.cells))]
}

func (c *Core) set(addr int, ins CoreInstruction) {
	c.cells[wrapMod(addr, len(c.cells))] = ins
}

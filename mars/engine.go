package mars

import "github.com/lookbusy1344/mars-emulator/redcode"

// taskQueue is one warrior's FIFO of pending PCs.
type taskQueue struct {
	warriorIndex int
	name         string
	pcs          []int
}

func (q *taskQueue) empty() bool { return len(q.pcs) == 0 }

func (q *taskQueue) popFront() int {
	pc := q.pcs[0]
	q.pcs = q.pcs[1:]
	return pc
}

func (q *taskQueue) pushBack(pc int) {
	q.pcs = append(q.pcs, pc)
}

// StepOutcomeKind distinguishes what a single Step call observed.
type StepOutcomeKind int

const (
	StepContinue StepOutcomeKind = iota
	StepWarriorKilled
	StepGameOver
)

// StepOutcome is the result of advancing one task.
type StepOutcome struct {
	Kind    StepOutcomeKind
	Killed  string
	Outcome MatchOutcome
}

// Engine holds the live state of one running match: the core, the
// round-robin ring of live warrior queues, the cycle count, and the
// engine's configuration. Grounded on original_source/src/core/mod.rs's
// Core::run_once, with one deliberate correction (see DESIGN.md): SPL's
// second enqueue target is the resolved source pointer, not a field value
// of the cell it points to.
type Engine struct {
	core   *Core
	ring   []*taskQueue
	allNames []string
	cfg    EngineConfig
	cycle  int
	logger Logger
	over   bool
	outcome MatchOutcome
}

func newEngine(core *Core, queues []*taskQueue, cfg EngineConfig) *Engine {
	ring := make([]*taskQueue, len(queues))
	copy(ring, queues)
	names := make([]string, len(queues))
	for i, q := range queues {
		names[i] = q.name
	}
	return &Engine{core: core, ring: ring, allNames: names, cfg: cfg, logger: nullLogger{}}
}

// SetLogger installs a Logger to receive events from subsequent Step/Run
// calls.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = nullLogger{}
	}
	e.logger = l
}

// Core exposes the match's memory for inspection (tests, visualisers).
func (e *Engine) Core() *Core { return e.core }

// Cycle returns the number of completed cycles so far.
func (e *Engine) Cycle() int { return e.cycle }

func (e *Engine) liveCount() int { return len(e.ring) }

// Step advances exactly one task of the front warrior, per spec.md §4.6.
func (e *Engine) Step() (StepOutcome, error) {
	if e.over {
		return StepOutcome{Kind: StepGameOver, Outcome: e.outcome}, nil
	}

	q := e.ring[0]
	e.ring = e.ring[1:]

	if q.empty() {
		return e.killWarrior(q), nil
	}

	pc := q.popFront()
	coreSize := e.cfg.CoreSize
	ir := e.core.at(pc)

	sp := e.resolveOperand(ir.Mode1, ir.Addr1, pc)
	sr := e.core.at(sp)
	dp := e.resolveOperand(ir.Mode2, ir.Addr2, pc)
	dr := e.core.at(dp)

	enqueue := e.dispatch(ir, sr, dr, pc, sp, dp, q)

	for _, next := range enqueue {
		q.pushBack(wrapMod(next, coreSize))
	}

	e.logger.Log(GameEvent{
		Kind: EventContinue,
		Step: StepDetails{PC: pc, DestPC: dp, WarriorIndex: q.warriorIndex, WarriorName: q.name},
	})

	var result StepOutcome
	if q.empty() {
		result = e.killWarrior(q)
	} else {
		e.ring = append(e.ring, q)
		result = StepOutcome{Kind: StepContinue}
	}

	e.cycle++
	if !e.over && e.cycle >= e.cfg.CyclesBeforeTie {
		result = e.finish()
	}
	return result, nil
}

// killWarrior records a warrior's death and checks for GameOver. The dead
// warrior's queue is simply not re-added to the ring.
func (e *Engine) killWarrior(q *taskQueue) StepOutcome {
	e.logger.Log(GameEvent{Kind: EventWarriorKilled, Warrior: q.name})
	if e.liveCount() <= 1 {
		return e.finish()
	}
	return StepOutcome{Kind: StepWarriorKilled, Killed: q.name}
}

func (e *Engine) finish() StepOutcome {
	e.over = true
	switch len(e.ring) {
	case 1:
		e.outcome = MatchOutcome{Kind: OutcomeWin, Winner: e.ring[0].name}
	default:
		remaining := make([]string, len(e.ring))
		for i, q := range e.ring {
			remaining[i] = q.name
		}
		e.outcome = MatchOutcome{Kind: OutcomeDraw, Remaining: remaining}
	}
	e.logger.Log(GameEvent{Kind: EventGameOver, Outcome: e.outcome})
	return StepOutcome{Kind: StepGameOver, Outcome: e.outcome}
}

// Run steps the match to completion and returns the final outcome.
func (e *Engine) Run() MatchOutcome {
	for !e.over {
		if _, err := e.Step(); err != nil {
			break
		}
	}
	return e.outcome
}

// resolveOperand implements spec.md §4.6's operand resolution, including
// the predecrement/postincrement side effects on core memory.
func (e *Engine) resolveOperand(mode redcode.AddressMode, addr, pc int) int {
	size := e.cfg.CoreSize
	readDist := e.cfg.ReadDistance
	writeDist := e.cfg.WriteDistance

	switch mode {
	case redcode.Immediate:
		return pc
	case redcode.Direct:
		return fold(pc+addr, readDist, size)
	}

	mid := fold(pc+addr, readDist, size)
	midCell := e.core.at(mid)

	switch mode {
	case redcode.AFieldIndirect:
		return fold(mid+midCell.Addr1, readDist, size)
	case redcode.BFieldIndirect:
		return fold(mid+midCell.Addr2, readDist, size)
	case redcode.AFieldPredecrementIndirect:
		nv := decrementAddress(midCell.Addr1, size)
		midCell.Addr1 = nv
		e.core.set(mid, midCell)
		return fold(mid+nv, writeDist, size)
	case redcode.BFieldPredecrementIndirect:
		nv := decrementAddress(midCell.Addr2, size)
		midCell.Addr2 = nv
		e.core.set(mid, midCell)
		return fold(mid+nv, writeDist, size)
	case redcode.AFieldPostincrementIndirect:
		old := midCell.Addr1
		midCell.Addr1 = wrapMod(old+1, size)
		e.core.set(mid, midCell)
		return fold(mid+old, writeDist, size)
	case redcode.BFieldPostincrementIndirect:
		old := midCell.Addr2
		midCell.Addr2 = wrapMod(old+1, size)
		e.core.set(mid, midCell)
		return fold(mid+old, writeDist, size)
	default:
		return mid
	}
}

type fieldPair struct{ src, dst byte }

func fieldPairs(modifier redcode.Modifier) []fieldPair {
	switch modifier {
	case redcode.ModA:
		return []fieldPair{{'A', 'A'}}
	case redcode.ModB:
		return []fieldPair{{'B', 'B'}}
	case redcode.ModAB:
		return []fieldPair{{'A', 'B'}}
	case redcode.ModBA:
		return []fieldPair{{'B', 'A'}}
	case redcode.ModX:
		return []fieldPair{{'A', 'B'}, {'B', 'A'}}
	default: // ModF, ModI (I behaves like F outside whole-instruction MOV/compare)
		return []fieldPair{{'A', 'A'}, {'B', 'B'}}
	}
}

func getField(ci CoreInstruction, which byte) int {
	if which == 'A' {
		return ci.Addr1
	}
	return ci.Addr2
}

func setField(ci *CoreInstruction, which byte, v int) {
	if which == 'A' {
		ci.Addr1 = v
	} else {
		ci.Addr2 = v
	}
}

// dispatch applies IR's opcode to SR/DR and returns the absolute PCs (not
// yet reduced modulo the core size) to enqueue for the current warrior. A nil
// result means the task dies: DAT, or DIV/MOD by zero.
func (e *Engine) dispatch(ir, sr, dr CoreInstruction, pc, sp, dp int, q *taskQueue) []int {
	size := e.cfg.CoreSize

	switch ir.Opcode {
	case redcode.DAT:
		return nil

	case redcode.MOV:
		e.execMove(ir.Modifier, sr, dr, dp)
		return []int{pc + 1}

	case redcode.ADD, redcode.SUB, redcode.MUL, redcode.DIV, redcode.MOD:
		if !e.execArith(ir.Opcode, ir.Modifier, sr, dr, dp) {
			return nil
		}
		return []int{pc + 1}

	case redcode.JMP:
		return []int{sp}

	case redcode.JMZ:
		if fieldsAllZero(dr, ir.Modifier) {
			return []int{sp}
		}
		return []int{pc + 1}

	case redcode.JMN:
		if fieldsAllNonZero(dr, ir.Modifier) {
			return []int{sp}
		}
		return []int{pc + 1}

	case redcode.DJN:
		newDR := decrementFields(dr, ir.Modifier, size)
		e.core.set(dp, newDR)
		if fieldsAllNonZero(newDR, ir.Modifier) {
			return []int{sp}
		}
		return []int{pc + 1}

	case redcode.SEQ:
		if compareFields(sr, dr, ir.Modifier, true) {
			return []int{pc + 2}
		}
		return []int{pc + 1}

	case redcode.SNE:
		if !compareFields(sr, dr, ir.Modifier, true) {
			return []int{pc + 2}
		}
		return []int{pc + 1}

	case redcode.SLT:
		if compareLess(sr, dr, ir.Modifier) {
			return []int{pc + 2}
		}
		return []int{pc + 1}

	case redcode.SPL:
		result := []int{pc + 1}
		if len(q.pcs)+1 < e.cfg.MaximumNumberOfTasks {
			result = append(result, sp)
		}
		return result

	case redcode.NOP:
		return []int{pc + 1}

	default:
		return []int{pc + 1}
	}
}

func (e *Engine) execMove(modifier redcode.Modifier, sr, dr CoreInstruction, dp int) {
	if modifier == redcode.ModI {
		e.core.set(dp, sr)
		return
	}
	result := dr
	for _, fp := range fieldPairs(modifier) {
		setField(&result, fp.dst, getField(sr, fp.src))
	}
	e.core.set(dp, result)
}

func (e *Engine) execArith(opcode redcode.Opcode, modifier redcode.Modifier, sr, dr CoreInstruction, dp int) bool {
	size := e.cfg.CoreSize
	pairs := fieldPairs(modifier)
	result := dr
	for _, fp := range pairs {
		a := getField(sr, fp.src)
		b := getField(dr, fp.dst)
		var v int
		switch opcode {
		case redcode.ADD:
			v = a + b
		case redcode.SUB:
			v = b - a
		case redcode.MUL:
			v = a * b
		case redcode.DIV:
			if a == 0 {
				return false
			}
			v = b / a
		case redcode.MOD:
			if a == 0 {
				return false
			}
			v = b % a
		}
		v = fold(wrapMod(v, size), e.cfg.WriteDistance, size)
		setField(&result, fp.dst, v)
	}
	e.core.set(dp, result)
	return true
}

func effectivePairs(modifier redcode.Modifier) []fieldPair {
	return fieldPairs(modifier)
}

func fieldsAllZero(ci CoreInstruction, modifier redcode.Modifier) bool {
	for _, fp := range effectivePairs(modifier) {
		if getField(ci, fp.dst) != 0 {
			return false
		}
	}
	return true
}

// fieldsAllNonZero requires every field selected by modifier to be nonzero.
// JMN and DJN jump only when ALL selected fields are nonzero, not when any
// one of them is.
func fieldsAllNonZero(ci CoreInstruction, modifier redcode.Modifier) bool {
	for _, fp := range effectivePairs(modifier) {
		if getField(ci, fp.dst) == 0 {
			return false
		}
	}
	return true
}

func decrementFields(dr CoreInstruction, modifier redcode.Modifier, size int) CoreInstruction {
	result := dr
	for _, fp := range effectivePairs(modifier) {
		v := getField(result, fp.dst)
		setField(&result, fp.dst, decrementAddress(v, size))
	}
	return result
}

func compareFields(sr, dr CoreInstruction, modifier redcode.Modifier, allowWholeInstruction bool) bool {
	if allowWholeInstruction && modifier == redcode.ModI {
		return sr.Opcode == dr.Opcode && sr.Modifier == dr.Modifier &&
			sr.Mode1 == dr.Mode1 && sr.Addr1 == dr.Addr1 &&
			sr.Mode2 == dr.Mode2 && sr.Addr2 == dr.Addr2
	}
	for _, fp := range fieldPairs(modifier) {
		if getField(sr, fp.src) != getField(dr, fp.dst) {
			return false
		}
	}
	return true
}

func compareLess(sr, dr CoreInstruction, modifier redcode.Modifier) bool {
	for _, fp := range effectivePairs(modifier) {
		if getField(sr, fp.src) >= getField(dr, fp.dst) {
			return false
		}
	}
	return true
}

package redcode

// NormalizedInstruction is a fully resolved Redcode instruction: every
// address field has been reduced to a plain integer offset, relative to the
// instruction's own position when it referenced a label.
type NormalizedInstruction struct {
	Opcode   Opcode
	Modifier Modifier
	Mode1    AddressMode
	Addr1    int
	Mode2    AddressMode
	Addr2    int
}

// String renders the canonical print form, e.g. "MOV.BA $8, *2".
func (ni NormalizedInstruction) String() string {
	return ni.Opcode.String() + "." + ni.Modifier.String() + " " +
		ni.Mode1.String() + itoa(ni.Addr1) + ", " + ni.Mode2.String() + itoa(ni.Addr2)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Warrior is a fully resolved, load-ready program.
type Warrior struct {
	Metadata     Metadata
	Instructions []NormalizedInstruction
	StartOffset  int
}

// resolve assigns each instruction line a position, builds the label table,
// evaluates every expression, and determines the starting offset. lines
// must already have had EQU definitions substituted away.
func resolve(lines []Line) (*Warrior, error) {
	labels := make(map[string]int)
	var instrLines []InstructionLine

	idx := 0
	var orgExpr Expr
	var endExpr Expr
	hasEnd := false

	for _, l := range lines {
		switch v := l.(type) {
		case InstructionLine:
			for _, name := range v.Labels {
				if _, dup := labels[name]; dup {
					return nil, duplicateLabel(name)
				}
				labels[name] = idx
			}
			instrLines = append(instrLines, v)
			idx++
		case OrgLine:
			// Last ORG statement wins when a file declares more than one.
			orgExpr = v.Expr
		case EndLine:
			if v.HasExpr {
				endExpr = v.Expr
				hasEnd = true
			}
		case MetadataLine, CommentLine, BlankLine, DefinitionLine:
			// no-op: metadata handled separately, the rest carry no semantics
		}
	}

	instructions := make([]NormalizedInstruction, len(instrLines))
	for i, il := range instrLines {
		addr1, err := EvaluateExpr(il.Operand1.Expr, labels, i)
		if err != nil {
			return nil, err
		}
		ni := NormalizedInstruction{
			Opcode:   il.Opcode,
			Modifier: il.Modifier,
			Mode1:    il.Operand1.Mode,
			Addr1:    addr1,
		}
		if il.HasOperand2 {
			addr2, err := EvaluateExpr(il.Operand2.Expr, labels, i)
			if err != nil {
				return nil, err
			}
			ni.Mode2 = il.Operand2.Mode
			ni.Addr2 = addr2
		} else {
			ni.Mode2 = Direct
			ni.Addr2 = 0
		}
		instructions[i] = ni
	}

	metadata, err := collectMetadata(lines)
	if err != nil {
		return nil, err
	}

	start := 0
	switch {
	case orgExpr != nil:
		// An explicit ORG always wins, even over an END that carries its
		// own expression.
		v, err := EvaluateExpr(orgExpr, labels, 0)
		if err != nil {
			return nil, err
		}
		start = v
	case hasEnd:
		v, err := EvaluateExpr(endExpr, labels, 0)
		if err != nil {
			return nil, err
		}
		start = v
	}

	return &Warrior{Metadata: metadata, Instructions: instructions, StartOffset: start}, nil
}

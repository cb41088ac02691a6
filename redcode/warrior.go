package redcode

// Parse compiles Redcode source text into a resolved Warrior: lexing,
// EQU substitution, per-line classification, label resolution, and
// expression evaluation all happen here, in that order.
func Parse(source string) (*Warrior, error) {
	tokens := NewLexer(source).TokenizeAll()
	rawLines := SplitLines(tokens)

	defs, codeLines := ExtractDefinitions(rawLines)
	substituted, err := SubstituteDefinitions(codeLines, defs)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(substituted))
	for _, lineTokens := range substituted {
		line, err := ParseLine(lineTokens)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return resolve(lines)
}

// PrintInstruction renders an instruction in its canonical textual form,
// e.g. "MOV.BA $8, *2".
func PrintInstruction(ni NormalizedInstruction) string {
	return ni.String()
}

package redcode

import "strings"

// ExtractDefinitions pulls every "LABEL EQU ..." line out of lines, in
// source order, and returns the remaining lines with those removed.
// Substitution operates token-by-token so that a definition's label can never
// accidentally match inside an unrelated identifier.
func ExtractDefinitions(lines [][]Token) (defs []DefinitionLine, remaining [][]Token) {
	for _, line := range lines {
		if d, ok := matchDefinition(line); ok {
			defs = append(defs, d)
			continue
		}
		remaining = append(remaining, line)
	}
	return defs, remaining
}

func matchDefinition(tokens []Token) (DefinitionLine, bool) {
	if len(tokens) >= 2 &&
		tokens[0].Type == TokenIdentifier && !isReservedWord(tokens[0].Literal) &&
		tokens[1].Type == TokenIdentifier && strings.EqualFold(tokens[1].Literal, "EQU") {
		body := tokens[2:]
		if len(body) > 0 && body[len(body)-1].Type == TokenComment {
			body = body[:len(body)-1]
		}
		return DefinitionLine{Label: tokens[0].Literal, Body: body}, true
	}
	return DefinitionLine{}, false
}

// maxDefinitionExpansions bounds substitution passes against a chain of
// definitions referencing each other; a genuine cycle is reported rather
// than looping forever.
const maxDefinitionExpansions = 64

// SubstituteDefinitions replaces every occurrence of each definition's label
// with its body tokens, across every line, repeating until no definition
// name remains unexpanded (definitions may reference earlier definitions).
func SubstituteDefinitions(lines [][]Token, defs []DefinitionLine) ([][]Token, error) {
	table := make(map[string][]Token, len(defs))
	for _, d := range defs {
		table[d.Label] = d.Body
	}

	expanded := make([][]Token, len(lines))
	copy(expanded, lines)

	for pass := 0; pass < maxDefinitionExpansions; pass++ {
		changed := false
		for i, line := range expanded {
			newLine, lineChanged := substituteOnce(line, table)
			if lineChanged {
				expanded[i] = newLine
				changed = true
			}
		}
		if !changed {
			return expanded, nil
		}
	}
	return nil, NewParseError(Position{}, ErrSyntax, "EQU definitions form a cycle")
}

func substituteOnce(line []Token, table map[string][]Token) ([]Token, bool) {
	changed := false
	var out []Token
	for _, tok := range line {
		if tok.Type == TokenIdentifier {
			if body, ok := table[tok.Literal]; ok {
				out = append(out, body...)
				changed = true
				continue
			}
		}
		out = append(out, tok)
	}
	return out, changed
}

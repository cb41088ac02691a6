package redcode

import "testing"

func lineTokens(src string) []Token {
	tokens := NewLexer(src).TokenizeAll()
	lines := SplitLines(tokens)
	if len(lines) == 0 {
		return nil
	}
	return lines[0]
}

func TestParseLineLabelWithColon(t *testing.T) {
	line, err := ParseLine(lineTokens("imp: mov.i $0, $1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ins, ok := line.(InstructionLine)
	if !ok {
		t.Fatalf("expected an InstructionLine, got %T", line)
	}
	if len(ins.Labels) != 1 || ins.Labels[0] != "imp" {
		t.Errorf("labels = %v, want [imp]", ins.Labels)
	}
	if ins.Opcode != MOV {
		t.Errorf("opcode = %v, want MOV", ins.Opcode)
	}
	if !ins.HasModifier || ins.Modifier != ModI {
		t.Errorf("modifier = %v (has=%v), want I", ins.Modifier, ins.HasModifier)
	}
}

func TestParseLineOpcodeCaseInsensitive(t *testing.T) {
	line, err := ParseLine(lineTokens("mOv $0, $1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ins := line.(InstructionLine)
	if ins.Opcode != MOV {
		t.Errorf("opcode = %v, want MOV", ins.Opcode)
	}
}

func TestParseLineMissingModifierDefaults(t *testing.T) {
	line, err := ParseLine(lineTokens("ADD #1, $2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ins := line.(InstructionLine)
	if ins.HasModifier {
		t.Fatal("expected HasModifier to be false")
	}
	if ins.Modifier != ModAB {
		t.Errorf("default modifier = %v, want AB", ins.Modifier)
	}
}

func TestParseLineMissingSecondOperand(t *testing.T) {
	line, err := ParseLine(lineTokens("JMP $5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ins := line.(InstructionLine)
	if ins.HasOperand2 {
		t.Fatal("expected HasOperand2 to be false")
	}
}

func TestParseLineDefinition(t *testing.T) {
	line, err := ParseLine(lineTokens("step EQU 4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def, ok := line.(DefinitionLine)
	if !ok {
		t.Fatalf("expected a DefinitionLine, got %T", line)
	}
	if def.Label != "step" {
		t.Errorf("label = %q, want step", def.Label)
	}
	if len(def.Body) != 1 || def.Body[0].Literal != "4" {
		t.Errorf("body = %v, want a single token '4'", def.Body)
	}
}

func TestParseLineOrgStatement(t *testing.T) {
	line, err := ParseLine(lineTokens("ORG start"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := line.(OrgLine); !ok {
		t.Fatalf("expected an OrgLine, got %T", line)
	}
}

func TestParseLineMetadataComment(t *testing.T) {
	line, err := ParseLine(lineTokens("; name Dwarf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta, ok := line.(MetadataLine)
	if !ok {
		t.Fatalf("expected a MetadataLine, got %T", line)
	}
	if meta.Key != MetaName || meta.Value != "Dwarf" {
		t.Errorf("metadata = %+v, want {name Dwarf}", meta)
	}
}

func TestParseLineOrdinaryComment(t *testing.T) {
	line, err := ParseLine(lineTokens("; just a remark"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := line.(CommentLine); !ok {
		t.Fatalf("expected a CommentLine, got %T", line)
	}
}

package asm

import "testing"

func walk(t *testing.T, src string) ([]Spanned[Statement], Definitions, []Error, []Warning) {
	t.Helper()
	toks, scanErrs, _ := Scan([]byte(src))
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	toks, macros, macroErrs, _ := ExpandMacros(toks)
	if len(macroErrs) != 0 {
		t.Fatalf("unexpected macro errors: %v", macroErrs)
	}
	stmts, defs, errs, warns := Walk(toks, macros)
	return stmts, defs, errs, warns
}

func TestWalk_labelAddresses(t *testing.T) {
	_, defs, errs, _ := walk(t, "@a ADD @b ADD ADD")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	a, ok := defs.Labels[ScopedIdentifier{Label: "a"}]
	if !ok || a.Address != 0x0100 {
		t.Errorf("label a: got %+v", a)
	}
	b, ok := defs.Labels[ScopedIdentifier{Label: "b"}]
	if !ok || b.Address != 0x0101 {
		t.Errorf("label b: got %+v", b)
	}
}

func TestWalk_sublabelScope(t *testing.T) {
	_, defs, errs, _ := walk(t, "@outer ADD &inner ADD")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	id := ScopedIdentifier{Label: "outer", Sublabel: "inner", HasSublabel: true}
	if _, ok := defs.Labels[id]; !ok {
		t.Errorf("expected sublabel %v to be defined", id)
	}
}

func TestWalk_bareSublabelRewrite(t *testing.T) {
	stmts, _, errs, _ := walk(t, "@outer .&inner")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	lit, ok := stmts[0].Node.(LiteralZeroPageAddress)
	if !ok {
		t.Fatalf("expected LiteralZeroPageAddress, got %T", stmts[0].Node)
	}
	want := ScopedIdentifier{Label: "outer", Sublabel: "inner", HasSublabel: true}
	if lit.Identifier != want {
		t.Errorf("got %+v, want %+v", lit.Identifier, want)
	}
}

func TestWalk_sublabelWithoutScope(t *testing.T) {
	_, _, errs, _ := walk(t, "&orphan")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if _, ok := errs[0].(SublabelDefinedWithoutScope); !ok {
		t.Errorf("expected SublabelDefinedWithoutScope, got %T", errs[0])
	}
}

func TestWalk_bareSublabelReferenceWithoutScope(t *testing.T) {
	_, _, errs, _ := walk(t, ".&inner")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if _, ok := errs[0].(SublabelReferencedWithoutScope); !ok {
		t.Errorf("expected SublabelReferencedWithoutScope, got %T", errs[0])
	}
}

func TestWalk_labelDefinedMoreThanOnce(t *testing.T) {
	_, _, errs, _ := walk(t, "@dup @dup")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if _, ok := errs[0].(LabelDefinedMoreThanOnce); !ok {
		t.Errorf("expected LabelDefinedMoreThanOnce, got %T", errs[0])
	}
}

func TestWalk_paddedBackwards(t *testing.T) {
	_, _, errs, _ := walk(t, "|0200 |0100")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if _, ok := errs[0].(PaddedBackwards); !ok {
		t.Errorf("expected PaddedBackwards, got %T", errs[0])
	}
}

func TestWalk_bytesInZerothPage(t *testing.T) {
	_, _, errs, _ := walk(t, "|0000 ADD")
	found := false
	for _, err := range errs {
		if _, ok := err.(BytesInZerothPage); ok {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a BytesInZerothPage error, got %v", errs)
	}
}

func TestWalk_bracketBalance(t *testing.T) {
	_, _, errs, _ := walk(t, "[ ADD ]")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	_, _, errs, _ = walk(t, "]")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if _, ok := errs[0].(NoMatchingOpeningBracket); !ok {
		t.Errorf("expected NoMatchingOpeningBracket, got %T", errs[0])
	}

	_, _, errs, _ = walk(t, "[")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if _, ok := errs[0].(NoMatchingClosingBracket); !ok {
		t.Errorf("expected NoMatchingClosingBracket, got %T", errs[0])
	}
}

func TestWalk_labelsAndBracketsAbsorbed(t *testing.T) {
	stmts, _, errs, _ := walk(t, "@start [ ADD ]")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d: %#v", len(stmts), nodes(stmts))
	}
	if _, ok := stmts[0].Node.(Instruction); !ok {
		t.Errorf("expected Instruction, got %T", stmts[0].Node)
	}
}

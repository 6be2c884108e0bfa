package asm

// origin is the address the write pointer starts at: the first 256 bytes of
// the address space are reserved and never written by a program.
const origin = 0x0100

// ceiling is one past the highest address a program may occupy.
const ceiling = 0x10000

// LabelDef is the address a label or label/sublabel resolved to, plus the
// span of its defining token (used as the PriorSpan of a later duplicate).
type LabelDef struct {
	Address uint16
	Span    Span
}

// Definitions is the symbol table the walker builds and the emitter consumes:
// every label and sublabel address, plus the macro table carried through from
// the macro processor so a caller can inspect it (e.g. for tooling).
type Definitions struct {
	Labels map[ScopedIdentifier]LabelDef
	Macros map[string]MacroDef
}

// walker accumulates the simulated write pointer and lexical label scope
// while making a single linear pass over the macro-expanded token stream.
type walker struct {
	pointer      int
	currentLabel string
	haveLabel    bool
	brackets     []Span
	defs         Definitions
	errs         []Error
	warns        []Warning
}

// Walk assigns addresses to every label and sublabel, rewrites bare
// &sublabel references against the lexically current label, and validates
// every pointer-affecting statement. It does not resolve address references
// against Definitions — forward references are legal, so that resolution is
// deferred entirely to the emitter, which runs only once Definitions is
// complete.
func Walk(tokens []Spanned[Token], macros map[string]MacroDef) ([]Spanned[Statement], Definitions, []Error, []Warning) {
	w := &walker{
		pointer: origin,
		defs: Definitions{
			Labels: make(map[ScopedIdentifier]LabelDef),
			Macros: macros,
		},
	}

	var stmts []Spanned[Statement]
	for _, t := range tokens {
		if stmt, keep := w.step(t); keep {
			stmts = append(stmts, stmt)
		}
	}
	for _, s := range w.brackets {
		w.errs = append(w.errs, NoMatchingClosingBracket{s})
	}
	return stmts, w.defs, w.errs, w.warns
}

// step processes one token, returning the (possibly rewritten) statement to
// keep in the output stream and whether it should be kept at all: label and
// sublabel definitions are absorbed into Definitions.Labels and never appear
// downstream, same for bracket balance markers.
func (w *walker) step(t Spanned[Token]) (Spanned[Statement], bool) {
	switch n := t.Node.(type) {
	case OpeningBracket:
		w.brackets = append(w.brackets, t.Span)
		return t, false

	case ClosingBracket:
		if len(w.brackets) == 0 {
			w.errs = append(w.errs, NoMatchingOpeningBracket{t.Span})
		} else {
			w.brackets = w.brackets[:len(w.brackets)-1]
		}
		return t, false

	case LabelDefine:
		w.currentLabel = n.Name
		w.haveLabel = true
		w.defineLabel(ScopedIdentifier{Label: n.Name}, t.Span)
		return t, false

	case SublabelDefine:
		if !w.haveLabel {
			w.errs = append(w.errs, SublabelDefinedWithoutScope{t.Span})
			return t, false
		}
		w.defineLabel(ScopedIdentifier{Label: w.currentLabel, Sublabel: n.Name, HasSublabel: true}, t.Span)
		return t, false

	case PadAbsolute:
		target := int(n.Value)
		if target < w.pointer {
			w.errs = append(w.errs, PaddedBackwards{Target: n.Value, Current: clampAddress(w.pointer), Span: t.Span})
		}
		w.pointer = target
		return t, true

	case PadRelative:
		w.advance(int(n.Value), t.Span)
		return t, true

	case LiteralZeroPageAddress:
		id := w.resolveReference(n.Identifier, t.Span)
		w.advance(2, t.Span)
		return spanOf[Statement](LiteralZeroPageAddress{Identifier: id}, t.Span), true

	case LiteralRelativeAddress:
		id := w.resolveReference(n.Identifier, t.Span)
		w.advance(2, t.Span)
		return spanOf[Statement](LiteralRelativeAddress{Identifier: id}, t.Span), true

	case LiteralAbsoluteAddress:
		id := w.resolveReference(n.Identifier, t.Span)
		w.advance(3, t.Span)
		return spanOf[Statement](LiteralAbsoluteAddress{Identifier: id}, t.Span), true

	case RawAddress:
		id := w.resolveReference(n.Identifier, t.Span)
		w.advance(2, t.Span)
		return spanOf[Statement](RawAddress{Identifier: id}, t.Span), true

	default:
		w.advance(width(n), t.Span)
		return t, true
	}
}

// defineLabel registers id at the current pointer, reporting a redefinition
// against the span of the first definition rather than overwriting it.
func (w *walker) defineLabel(id ScopedIdentifier, span Span) {
	if prior, exists := w.defs.Labels[id]; exists {
		w.errs = append(w.errs, LabelDefinedMoreThanOnce{Name: id.String(), Span: span, PriorSpan: prior.Span})
		return
	}
	w.defs.Labels[id] = LabelDef{Address: clampAddress(w.pointer), Span: span}
}

// resolveReference rewrites a bare &sublabel (Label == "" && HasSublabel)
// against the lexically current label; any other identifier passes through
// untouched. Scope is purely lexical and has nothing to do with whether the
// target ultimately resolves.
func (w *walker) resolveReference(id ScopedIdentifier, span Span) ScopedIdentifier {
	if id.HasSublabel && id.Label == "" {
		if !w.haveLabel {
			w.errs = append(w.errs, SublabelReferencedWithoutScope{span})
			return id
		}
		id.Label = w.currentLabel
	}
	return id
}

// advance moves the write pointer forward by n bytes, flagging a write below
// origin and a program that grows past the addressable ceiling. A zero-width
// advance (an empty RawWord) writes nothing and triggers neither check.
func (w *walker) advance(n int, span Span) {
	if n == 0 {
		return
	}
	if w.pointer < origin {
		w.errs = append(w.errs, BytesInZerothPage{span})
	}
	w.pointer += n
	if w.pointer > ceiling {
		w.errs = append(w.errs, ProgramTooLong{span})
	}
}

// width returns the number of bytes a non-reference, non-pad, non-label
// token occupies: literal forms carry a one-byte LIT/LIT2 prefix that their
// raw counterparts don't.
func width(n Token) int {
	switch v := n.(type) {
	case Instruction:
		return 1
	case LiteralHexByte:
		return 2
	case LiteralHexShort:
		return 3
	case RawHexByte:
		return 1
	case RawHexShort:
		return 2
	case RawChar:
		return 1
	case RawWord:
		return len(v.Value)
	default:
		return 0
	}
}

// clampAddress folds a pointer value that has grown past the 16-bit address
// space back into uint16 range, for display/storage purposes only; the
// ProgramTooLong check above has already fired against the unclamped value.
func clampAddress(pointer int) uint16 {
	return uint16(pointer & 0xFFFF)
}

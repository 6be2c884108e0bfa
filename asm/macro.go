package asm

// MacroDef is the captured body of a macro definition, stored verbatim so
// that spans inside the body keep pointing into the original source after
// splicing: each expansion appends copies of the body's token values to a
// new output slice and never modifies the stored body.
type MacroDef struct {
	Body []Spanned[Token]
	Span Span
}

// frame records one live macro invocation while expanding, for cycle
// detection via an invocation stack (not a visited-set, so diamond-shaped
// macro graphs aren't misreported as cycles).
type frame struct {
	name string
	span Span
}

// ExpandMacros folds %name { body } definitions out of the token stream and
// inlines every MacroInvoke with its definition's captured body, repeating
// until no invocation remains. It returns the purified token stream (ready
// for the walker), the macro table (for Definitions.Macros) and any
// diagnostics collected along the way.
func ExpandMacros(tokens []Spanned[Token]) ([]Spanned[Token], map[string]MacroDef, []Error, []Warning) {
	remaining, macros, foldErrs := foldMacroDefinitions(tokens)

	e := &expander{macros: macros, used: make(map[string]bool)}
	expanded, expandErrs, expandWarns := e.expand(remaining, nil)

	errs := append(foldErrs, expandErrs...)
	warns := expandWarns
	for name, def := range macros {
		if !e.used[name] {
			warns = append(warns, MacroUnused{Name: name, Span: def.Span})
		}
	}
	return expanded, macros, errs, warns
}

// foldMacroDefinitions extracts every top-level %name { ... } pair from the
// stream, tracking nested brace depth so a body may itself contain brace
// pairs. It is a single linear pass: only definitions visible at this level
// are registered; a %name{...} pair embedded inside a captured body is left
// untouched here and is instead flagged when that body is spliced back in
// by the expander (see stripNestedDefinitions).
func foldMacroDefinitions(tokens []Spanned[Token]) ([]Spanned[Token], map[string]MacroDef, []Error) {
	macros := make(map[string]MacroDef)
	var remaining []Spanned[Token]
	var errs []Error

	i := 0
	for i < len(tokens) {
		t := tokens[i]
		switch n := t.Node.(type) {
		case MacroDefine:
			if i+1 >= len(tokens) {
				errs = append(errs, NoMatchingOpeningBrace{t.Span})
				i++
				continue
			}
			if _, ok := tokens[i+1].Node.(OpeningBrace); !ok {
				errs = append(errs, NoMatchingOpeningBrace{t.Span})
				i++
				continue
			}
			bodyStart := i + 2
			depth := 1
			j := bodyStart
			for j < len(tokens) && depth > 0 {
				switch tokens[j].Node.(type) {
				case OpeningBrace:
					depth++
					j++
				case ClosingBrace:
					depth--
					if depth == 0 {
						goto closed
					}
					j++
				default:
					j++
				}
			}
		closed:
			if depth != 0 {
				errs = append(errs, NoMatchingClosingBrace{tokens[i+1].Span})
				i = j
				continue
			}
			body := tokens[bodyStart:j]
			def := t.Span.join(tokens[j].Span)
			if prior, exists := macros[n.Name]; exists {
				errs = append(errs, MacroDefinedMoreThanOnce{Name: n.Name, Span: def, PriorSpan: prior.Span})
			} else {
				macros[n.Name] = MacroDef{Body: body, Span: def}
			}
			i = j + 1
		case OpeningBrace:
			errs = append(errs, OpeningBraceNotAfterMacroDefinition{t.Span})
			i++
		case ClosingBrace:
			errs = append(errs, NoMatchingOpeningBrace{t.Span})
			i++
		default:
			remaining = append(remaining, t)
			i++
		}
	}
	return remaining, macros, errs
}

type expander struct {
	macros map[string]MacroDef
	used   map[string]bool
}

func pushFrame(stack []frame, f frame) []frame {
	newStack := make([]frame, len(stack)+1)
	copy(newStack, stack)
	newStack[len(stack)] = f
	return newStack
}

func indexOfFrame(stack []frame, name string) int {
	for i, f := range stack {
		if f.name == name {
			return i
		}
	}
	return -1
}

func (e *expander) expand(tokens []Spanned[Token], stack []frame) ([]Spanned[Token], []Error, []Warning) {
	var out []Spanned[Token]
	var errs []Error
	var warns []Warning

	for _, t := range tokens {
		inv, ok := t.Node.(MacroInvoke)
		if !ok {
			out = append(out, t)
			continue
		}
		if idx := indexOfFrame(stack, inv.Name); idx >= 0 {
			chain := make([]Span, 0, len(stack)-idx)
			for _, f := range stack[idx+1:] {
				chain = append(chain, f.span)
			}
			chain = append(chain, t.Span)
			errs = append(errs, RecursiveMacro{Name: inv.Name, Chain: chain})
			continue
		}
		def, ok := e.macros[inv.Name]
		if !ok {
			errs = append(errs, MacroUndefined{Name: inv.Name, Span: t.Span})
			continue
		}
		e.used[inv.Name] = true

		sub, subErrs, subWarns := e.expand(def.Body, pushFrame(stack, frame{inv.Name, t.Span}))
		sub, nestedErrs := e.stripNestedDefinitions(sub)

		errs = append(errs, nestedErrs...)
		for _, se := range subErrs {
			errs = append(errs, MacroError{Cause: se, Span: t.Span})
		}
		warns = append(warns, subWarns...)
		out = append(out, sub...)
	}
	return out, errs, warns
}

// stripNestedDefinitions removes a %name{...} pair that survived expansion
// of a macro body (i.e. one written literally inside another macro's
// body). Per the chosen resolution of an otherwise-unspecified case, this
// is reported as a redefinition against the outermost definition table
// rather than silently registered.
func (e *expander) stripNestedDefinitions(tokens []Spanned[Token]) ([]Spanned[Token], []Error) {
	var out []Spanned[Token]
	var errs []Error

	i := 0
	for i < len(tokens) {
		t := tokens[i]
		md, ok := t.Node.(MacroDefine)
		if !ok {
			if _, isBrace := t.Node.(OpeningBrace); isBrace {
				errs = append(errs, OpeningBraceNotAfterMacroDefinition{t.Span})
				i++
				continue
			}
			if _, isBrace := t.Node.(ClosingBrace); isBrace {
				errs = append(errs, NoMatchingOpeningBrace{t.Span})
				i++
				continue
			}
			out = append(out, t)
			i++
			continue
		}
		if i+1 >= len(tokens) {
			errs = append(errs, NoMatchingOpeningBrace{t.Span})
			i++
			continue
		}
		if _, ok := tokens[i+1].Node.(OpeningBrace); !ok {
			errs = append(errs, NoMatchingOpeningBrace{t.Span})
			i++
			continue
		}
		depth := 1
		j := i + 2
		for j < len(tokens) && depth > 0 {
			switch tokens[j].Node.(type) {
			case OpeningBrace:
				depth++
			case ClosingBrace:
				depth--
			}
			j++
		}
		def := t.Span
		if j-1 < len(tokens) {
			def = t.Span.join(tokens[j-1].Span)
		}
		prior := def
		if p, exists := e.macros[md.Name]; exists {
			prior = p.Span
		}
		errs = append(errs, MacroDefinedMoreThanOnce{Name: md.Name, Span: def, PriorSpan: prior})
		i = j
	}
	return out, errs
}

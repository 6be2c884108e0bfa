package asm

// Span is a half-open byte range [From, To) into the original source text.
// Line and Column give the 1-based position of From, for renderers; they
// play no part in Span equality or in the assembler's own logic.
type Span struct {
	From, To     int
	Line, Column int
}

// Spanned pairs a value with the span of source it was parsed from.
type Spanned[T any] struct {
	Node T
	Span Span
}

func spanOf[T any](node T, span Span) Spanned[T] {
	return Spanned[T]{Node: node, Span: span}
}

// join returns the smallest span covering both a and b.
func (a Span) join(b Span) Span {
	if b.From < a.From {
		a.From, a.Line, a.Column = b.From, b.Line, b.Column
	}
	if b.To > a.To {
		a.To = b.To
	}
	return a
}

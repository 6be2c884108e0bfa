package asm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is implemented by every diagnostic kind the assembler can report.
// Each concrete type carries only the operands it needs; a renderer (see the
// reporter package) prints Error() and type-switches on the concrete type to
// find any secondary span. The
// core never formats a human-readable message of its own beyond the plain
// Error() string, which exists so these values satisfy the error interface
// and compose with errors.Is/As.
type Error interface {
	error
	PrimarySpan() Span
}

// Warning is implemented by every warning kind the assembler can report.
type Warning interface {
	PrimarySpan() Span
}

// --- structural ---

type NoMatchingClosingParenthesis struct{ Span Span }
type NoMatchingOpeningParenthesis struct{ Span Span }
type OpeningBraceNotAfterMacroDefinition struct{ Span Span }
type NoMatchingOpeningBrace struct{ Span Span }
type NoMatchingClosingBrace struct{ Span Span }
type NoMatchingOpeningBracket struct{ Span Span }
type NoMatchingClosingBracket struct{ Span Span }

func (e NoMatchingClosingParenthesis) Error() string        { return "no matching closing parenthesis" }
func (e NoMatchingOpeningParenthesis) Error() string        { return "no matching opening parenthesis" }
func (e OpeningBraceNotAfterMacroDefinition) Error() string { return "'{' not after a macro definition" }
func (e NoMatchingOpeningBrace) Error() string              { return "no matching opening brace" }
func (e NoMatchingClosingBrace) Error() string              { return "no matching closing brace" }
func (e NoMatchingOpeningBracket) Error() string            { return "no matching opening bracket" }
func (e NoMatchingClosingBracket) Error() string            { return "no matching closing bracket" }

func (e NoMatchingClosingParenthesis) PrimarySpan() Span        { return e.Span }
func (e NoMatchingOpeningParenthesis) PrimarySpan() Span        { return e.Span }
func (e OpeningBraceNotAfterMacroDefinition) PrimarySpan() Span { return e.Span }
func (e NoMatchingOpeningBrace) PrimarySpan() Span              { return e.Span }
func (e NoMatchingClosingBrace) PrimarySpan() Span              { return e.Span }
func (e NoMatchingOpeningBracket) PrimarySpan() Span            { return e.Span }
func (e NoMatchingClosingBracket) PrimarySpan() Span            { return e.Span }

// --- naming ---

type IdentifierExpected struct{ Span Span }
type MoreThanOneSlashInIdentifier struct{ Span Span }
type SlashInLabelOrSublabel struct{ Span Span }
type AmpersandAtTheStartOfLabel struct{ Span Span }
type MacroCannotBeAHexNumber struct {
	Name string
	Span Span
}
type MacroCannotBeAnInstruction struct {
	Name string
	Span Span
}

func (e IdentifierExpected) Error() string     { return "identifier expected" }
func (e MoreThanOneSlashInIdentifier) Error() string { return "more than one slash in identifier" }
func (e SlashInLabelOrSublabel) Error() string       { return "slash in label or sublabel" }
func (e AmpersandAtTheStartOfLabel) Error() string   { return "'&' at the start of a label" }
func (e MacroCannotBeAHexNumber) Error() string {
	return fmt.Sprintf("macro %q cannot be a hex number", e.Name)
}
func (e MacroCannotBeAnInstruction) Error() string {
	return fmt.Sprintf("macro %q cannot be an instruction", e.Name)
}

func (e IdentifierExpected) PrimarySpan() Span             { return e.Span }
func (e MoreThanOneSlashInIdentifier) PrimarySpan() Span   { return e.Span }
func (e SlashInLabelOrSublabel) PrimarySpan() Span         { return e.Span }
func (e AmpersandAtTheStartOfLabel) PrimarySpan() Span     { return e.Span }
func (e MacroCannotBeAHexNumber) PrimarySpan() Span        { return e.Span }
func (e MacroCannotBeAnInstruction) PrimarySpan() Span     { return e.Span }

// --- numeric ---

type HexNumberUnevenLength struct{ Span Span }
type HexNumberTooLong struct{ Span Span }
type InvalidHexDigit struct{ Span Span }
type MoreThanOneByteFound struct{ Span Span }
type CharacterExpected struct{ Span Span }

func (e HexNumberUnevenLength) Error() string { return "hex number of uneven length" }
func (e HexNumberTooLong) Error() string      { return "hex number too long" }
func (e InvalidHexDigit) Error() string       { return "invalid hex digit" }
func (e MoreThanOneByteFound) Error() string  { return "more than one byte found in character literal" }
func (e CharacterExpected) Error() string     { return "character expected" }

func (e HexNumberUnevenLength) PrimarySpan() Span { return e.Span }
func (e HexNumberTooLong) PrimarySpan() Span      { return e.Span }
func (e InvalidHexDigit) PrimarySpan() Span       { return e.Span }
func (e MoreThanOneByteFound) PrimarySpan() Span  { return e.Span }
func (e CharacterExpected) PrimarySpan() Span     { return e.Span }

// --- macro ---

type MacroDefinedMoreThanOnce struct {
	Name     string
	Span     Span
	PriorSpan Span
}
type MacroUndefined struct {
	Name string
	Span Span
}

// RecursiveMacro carries the full invocation chain from the first re-entry
// of Name back to itself; len(Chain) == 1 is the self-recursion special case.
type RecursiveMacro struct {
	Name  string
	Chain []Span
}

// MacroError wraps an error raised while expanding a macro body, so that a
// renderer can show both the intrinsic error location and the invocation
// site that triggered it. The cause chain is kept reachable via Unwrap so
// that errors.Is/As see through to the root error; MacroError has no
// Cause() method, so pkg/errors.Cause stops at the MacroError itself.
type MacroError struct {
	Cause Error
	Span  Span // the invocation site
}

func (e MacroDefinedMoreThanOnce) Error() string {
	return fmt.Sprintf("macro %q defined more than once", e.Name)
}
func (e MacroUndefined) Error() string { return fmt.Sprintf("undefined macro %q", e.Name) }
func (e RecursiveMacro) Error() string {
	return fmt.Sprintf("recursive macro %q", e.Name)
}
func (e MacroError) Error() string { return errors.Wrap(e.Cause, "in macro expansion").Error() }
func (e MacroError) Unwrap() error { return e.Cause }

func (e MacroDefinedMoreThanOnce) PrimarySpan() Span { return e.Span }
func (e MacroUndefined) PrimarySpan() Span           { return e.Span }
func (e RecursiveMacro) PrimarySpan() Span           { return e.Chain[len(e.Chain)-1] }
func (e MacroError) PrimarySpan() Span               { return e.Span }

// --- addressing ---

type LabelUndefined struct {
	Name string
	Span Span
}
type AddressNotZeroPage struct {
	Address    uint16
	Identifier string
	Span       Span
}
type AddressTooFar struct {
	Distance   int
	Identifier string
	Span       Span
	OtherSpan  Span
}
type SublabelDefinedWithoutScope struct{ Span Span }
type SublabelReferencedWithoutScope struct{ Span Span }

func (e LabelUndefined) Error() string { return fmt.Sprintf("undefined label %q", e.Name) }
func (e AddressNotZeroPage) Error() string {
	return fmt.Sprintf("address of %q ($%04x) is not in the zero page", e.Identifier, e.Address)
}
func (e AddressTooFar) Error() string {
	return fmt.Sprintf("address of %q is too far (%d bytes)", e.Identifier, e.Distance)
}
func (e SublabelDefinedWithoutScope) Error() string { return "sublabel defined without a scope" }
func (e SublabelReferencedWithoutScope) Error() string {
	return "sublabel referenced without a scope"
}

func (e LabelUndefined) PrimarySpan() Span                 { return e.Span }
func (e AddressNotZeroPage) PrimarySpan() Span              { return e.Span }
func (e AddressTooFar) PrimarySpan() Span                   { return e.Span }
func (e SublabelDefinedWithoutScope) PrimarySpan() Span     { return e.Span }
func (e SublabelReferencedWithoutScope) PrimarySpan() Span  { return e.Span }

// --- layout ---

type BytesInZerothPage struct{ Span Span }
type PaddedBackwards struct {
	Target  uint16
	Current uint16
	Span    Span
}
type ProgramTooLong struct{ Span Span }
type LabelDefinedMoreThanOnce struct {
	Name      string
	Span      Span
	PriorSpan Span
}

func (e BytesInZerothPage) Error() string { return "bytes written in the zeroth page" }
func (e PaddedBackwards) Error() string {
	return fmt.Sprintf("padded backwards from $%04x to $%04x", e.Current, e.Target)
}
func (e ProgramTooLong) Error() string { return "program too long" }
func (e LabelDefinedMoreThanOnce) Error() string {
	return fmt.Sprintf("label %q defined more than once", e.Name)
}

func (e BytesInZerothPage) PrimarySpan() Span        { return e.Span }
func (e PaddedBackwards) PrimarySpan() Span          { return e.Span }
func (e ProgramTooLong) PrimarySpan() Span           { return e.Span }
func (e LabelDefinedMoreThanOnce) PrimarySpan() Span { return e.Span }

// --- warnings ---

type TokenTrimmed struct {
	Original string
	Span     Span
}
type InstructionModeDefinedMoreThanOnce struct{ Span Span }
type MacroUnused struct {
	Name string
	Span Span
}
type LabelUnused struct {
	Name string
	Span Span
}

func (w TokenTrimmed) PrimarySpan() Span                        { return w.Span }
func (w InstructionModeDefinedMoreThanOnce) PrimarySpan() Span  { return w.Span }
func (w MacroUnused) PrimarySpan() Span                         { return w.Span }
func (w LabelUnused) PrimarySpan() Span                         { return w.Span }

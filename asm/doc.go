// Package asm assembles Uxntn source into a Uxn binary image.
//
// The pipeline is four stages, run in order by Assemble:
//
//	Scan         source bytes -> token stream
//	ExpandMacros token stream -> token stream with macros inlined
//	Walk         token stream -> statement stream + label/sublabel addresses
//	Emit         statement stream + addresses -> byte image
//
// Each stage accumulates as many diagnostics as it can before returning,
// rather than stopping at the first one; the pipeline itself only stops
// between stages, and only when the prior stage produced an error.
//
// Instructions
//
// An instruction mnemonic is its three-letter opcode name, optionally
// followed by mode flags: '2' for short mode (operate on a 16-bit value
// instead of 8-bit), 'k' to keep its inputs on the stack instead of
// consuming them, and 'r' to operate on the return stack instead of the
// working stack. ADD, ADD2, ADDk and ADD2kr are all valid.
//
// Literals and references
//
//	#ab     LiteralHexByte: push the byte 0xab
//	#abcd   LiteralHexShort: push the short 0xabcd
//	ab      RawHexByte: emit the byte 0xab verbatim, no LIT prefix
//	abcd    RawHexShort: emit the short 0xabcd verbatim
//	'a      RawChar: emit the single byte 'a'
//	"hello  RawWord: emit the ASCII bytes of the word verbatim
//	.label  LiteralZeroPageAddress: push label's address, which must fit in one byte
//	,label  LiteralRelativeAddress: push label's address as a signed offset from here
//	;label  LiteralAbsoluteAddress: push label's full 16-bit address
//	:label  RawAddress: emit label's full 16-bit address verbatim
//
// Labels, sublabels and macros
//
//	@label        define a label at the current address
//	&sublabel     define a sublabel, scoped to the nearest preceding @label
//	label/sub     reference a sublabel from outside its scope
//	%name { ... } define a macro; every occurrence of name elsewhere expands
//	              to a copy of its body
//
// Padding
//
//	|01ff   PadAbsolute: move the write pointer to address 0x01ff
//	$10     PadRelative: advance the write pointer by 0x10 bytes
package asm

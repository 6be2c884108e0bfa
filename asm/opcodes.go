package asm

// Uxn CPU opcodes. The mnemonic is always the first three bytes of an
// instruction lexeme, uppercased; any further bytes are mode flags.
const (
	OpBRK InstructionKind = iota
	OpLIT
	OpINC
	OpPOP
	OpDUP
	OpNIP
	OpSWP
	OpOVR
	OpROT
	OpEQU
	OpNEQ
	OpGTH
	OpLTH
	OpJMP
	OpJCN
	OpJSR
	OpSTH
	OpLDZ
	OpSTZ
	OpLDR
	OpSTR
	OpLDA
	OpSTA
	OpDEI
	OpDEO
	OpADD
	OpSUB
	OpMUL
	OpDIV
	OpAND
	OpORA
	OpEOR
	OpSFT
)

var mnemonics = [...]string{
	OpBRK: "BRK",
	OpLIT: "LIT",
	OpINC: "INC",
	OpPOP: "POP",
	OpDUP: "DUP",
	OpNIP: "NIP",
	OpSWP: "SWP",
	OpOVR: "OVR",
	OpROT: "ROT",
	OpEQU: "EQU",
	OpNEQ: "NEQ",
	OpGTH: "GTH",
	OpLTH: "LTH",
	OpJMP: "JMP",
	OpJCN: "JCN",
	OpJSR: "JSR",
	OpSTH: "STH",
	OpLDZ: "LDZ",
	OpSTZ: "STZ",
	OpLDR: "LDR",
	OpSTR: "STR",
	OpLDA: "LDA",
	OpSTA: "STA",
	OpDEI: "DEI",
	OpDEO: "DEO",
	OpADD: "ADD",
	OpSUB: "SUB",
	OpMUL: "MUL",
	OpDIV: "DIV",
	OpAND: "AND",
	OpORA: "ORA",
	OpEOR: "EOR",
	OpSFT: "SFT",
}

var mnemonicIndex = make(map[string]InstructionKind, len(mnemonics))

func init() {
	for k, m := range mnemonics {
		mnemonicIndex[m] = InstructionKind(k)
	}
}

// LIT and LIT2 are BRK (0x00) with the keep and short bits set
// respectively; the target VM pushes the following 1 or 2 bytes verbatim.
const (
	opcodeLIT  byte = 0x80
	opcodeLIT2 byte = 0x20
)

// encode returns the single opcode byte for an instruction: the 5-bit kind
// with the short/return/keep mode bits folded in at bits 5, 6 and 7.
func (i Instruction) encode() byte {
	b := byte(i.Kind)
	if i.Short {
		b |= 0x20
	}
	if i.Return {
		b |= 0x40
	}
	if i.Keep {
		b |= 0x80
	}
	return b
}

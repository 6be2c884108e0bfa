package asm

// imageSize is the number of addressable bytes starting at origin: the full
// 64K address space minus the reserved zero page.
const imageSize = 256*256 - 256

// binary is the output buffer being assembled: a fixed window onto addresses
// origin..0xffff, with a write pointer that can be repositioned by pad
// directives and a high-water mark recording how much of it was touched.
type binary struct {
	data    [imageSize]byte
	pointer uint16
	length  uint16
}

func newBinary() *binary {
	return &binary{pointer: origin, length: origin}
}

func (b *binary) pushByte(v byte) {
	b.data[b.pointer-origin] = v
	b.incrementPointer(1)
	b.length = b.pointer
}

func (b *binary) pushShort(v uint16) {
	b.pushByte(byte(v >> 8))
	b.pushByte(byte(v))
}

func (b *binary) setPointer(to uint16)    { b.pointer = to }
func (b *binary) incrementPointer(by int) { b.pointer += uint16(by) }

// bytes trims the buffer down to what was actually written.
func (b *binary) bytes() []byte {
	out := make([]byte, b.length-origin)
	copy(out, b.data[:b.length-origin])
	return out
}

// Emit walks the statement stream a second time, now with a complete
// Definitions table, resolving every address reference and writing the
// final byte image. It always runs to completion: a reference that fails to
// resolve still reserves its slot's width so that later addresses stay
// correct, and the bad statement is recorded as an error rather than
// aborting the pass.
func Emit(statements []Spanned[Statement], defs Definitions) ([]byte, []Error, []Warning) {
	var errs []Error
	var warns []Warning

	unused := make(map[ScopedIdentifier]bool, len(defs.Labels))
	for id := range defs.Labels {
		unused[id] = true
	}

	bin := newBinary()

	for _, s := range statements {
		switch n := s.Node.(type) {
		case Instruction:
			bin.pushByte(n.encode())

		case PadAbsolute:
			bin.setPointer(n.Value)

		case PadRelative:
			bin.incrementPointer(int(n.Value))

		case LiteralZeroPageAddress:
			address, _, err := findAddress(n.Identifier, defs, s.Span)
			if err != nil {
				errs = append(errs, err)
				bin.incrementPointer(2)
				continue
			}
			delete(unused, n.Identifier)
			if address <= 0xff {
				bin.pushByte(opcodeLIT)
				bin.pushByte(byte(address))
			} else {
				errs = append(errs, AddressNotZeroPage{Address: address, Identifier: n.Identifier.String(), Span: s.Span})
				bin.incrementPointer(2)
			}

		case LiteralRelativeAddress:
			address, otherSpan, err := findAddress(n.Identifier, defs, s.Span)
			if err != nil {
				errs = append(errs, err)
				bin.incrementPointer(2)
				continue
			}
			delete(unused, n.Identifier)
			offset := int(address) - int(bin.pointer) - 3
			if offset < -126 || offset > 126 {
				dist := offset
				if dist < 0 {
					dist = -dist
				}
				errs = append(errs, AddressTooFar{Distance: dist, Identifier: n.Identifier.String(), Span: s.Span, OtherSpan: otherSpan})
				bin.incrementPointer(2)
			} else {
				bin.pushByte(opcodeLIT)
				bin.pushByte(byte(int8(offset)))
			}

		case LiteralAbsoluteAddress:
			address, _, err := findAddress(n.Identifier, defs, s.Span)
			if err != nil {
				errs = append(errs, err)
				bin.incrementPointer(3)
				continue
			}
			delete(unused, n.Identifier)
			bin.pushByte(opcodeLIT2)
			bin.pushShort(address)

		case RawAddress:
			address, _, err := findAddress(n.Identifier, defs, s.Span)
			if err != nil {
				errs = append(errs, err)
				bin.incrementPointer(2)
				continue
			}
			delete(unused, n.Identifier)
			bin.pushShort(address)

		case LiteralHexByte:
			bin.pushByte(opcodeLIT)
			bin.pushByte(n.Value)

		case LiteralHexShort:
			bin.pushByte(opcodeLIT2)
			bin.pushShort(n.Value)

		case RawHexByte:
			bin.pushByte(n.Value)

		case RawHexShort:
			bin.pushShort(n.Value)

		case RawChar:
			bin.pushByte(n.Value)

		case RawWord:
			for _, c := range n.Value {
				bin.pushByte(c)
			}
		}
	}

	for id := range unused {
		if id.Capital() {
			continue
		}
		warns = append(warns, LabelUnused{Name: id.String(), Span: defs.Labels[id].Span})
	}

	if len(errs) > 0 {
		return nil, errs, warns
	}
	return bin.bytes(), nil, warns
}

// findAddress looks up a resolved identifier's address and the span of its
// defining label, for use both as the literal value and (for relative
// addressing) as the secondary span on an AddressTooFar diagnostic.
func findAddress(id ScopedIdentifier, defs Definitions, span Span) (uint16, Span, Error) {
	def, ok := defs.Labels[id]
	if !ok {
		return 0, Span{}, LabelUndefined{Name: id.String(), Span: span}
	}
	return def.Address, def.Span, nil
}

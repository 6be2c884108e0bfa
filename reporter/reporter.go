// Package reporter renders the diagnostics produced by package asm as
// human-readable text: a header line, the offending source, and a span
// underline, colored when the caller asks for it.
package reporter

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/karolbelina/ruxnasm/asm"
)

const (
	colorRed    = 1
	colorYellow = 3
	colorDim    = 2
)

// Render writes one block per diagnostic to w: errors first, then warnings,
// each group in the order given. fileName is used only for the header line.
func Render(w io.Writer, source []byte, fileName string, errs []asm.Error, warns []asm.Warning, color bool) {
	lines := splitLines(source)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	width := terminalWidth(w)

	for _, e := range errs {
		render(bw, lines, fileName, "error", colorRed, e.Error(), e.PrimarySpan(), otherSpan(e), color, width)
	}
	for _, wn := range warns {
		render(bw, lines, fileName, "warning", colorYellow, warningMessage(wn), wn.PrimarySpan(), nil, color, width)
	}
}

// terminalWidth reports how many columns are available for a source
// snippet, or 0 (no truncation) when w isn't a terminal at all.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return cols
}

// sourceLine is one line of the original source, without its terminator, and
// the byte offset its first byte sits at.
type sourceLine struct {
	text  []byte
	start int
}

func splitLines(source []byte) []sourceLine {
	var lines []sourceLine
	start := 0
	for i, b := range source {
		if b == '\n' {
			lines = append(lines, sourceLine{text: source[start:i], start: start})
			start = i + 1
		}
	}
	lines = append(lines, sourceLine{text: source[start:], start: start})
	return lines
}

func lineAt(lines []sourceLine, span asm.Span) sourceLine {
	for _, l := range lines {
		if span.From >= l.start && span.From <= l.start+len(l.text) {
			return l
		}
	}
	return sourceLine{}
}

// otherSpan extracts the secondary span carried by a diagnostic that points
// at a second location (a prior definition, the target of an overlong
// jump), so it can be underlined too. Most error kinds carry none.
func otherSpan(e asm.Error) *asm.Span {
	switch v := e.(type) {
	case asm.AddressTooFar:
		return &v.OtherSpan
	case asm.LabelDefinedMoreThanOnce:
		return &v.PriorSpan
	case asm.MacroDefinedMoreThanOnce:
		return &v.PriorSpan
	case asm.RecursiveMacro:
		if len(v.Chain) > 1 {
			return &v.Chain[0]
		}
		return nil
	default:
		return nil
	}
}

// warningMessage produces warning text; warnings carry only their operands,
// not a formatted message, since unlike errors they're never wrapped or
// chained and so have no need of the error interface.
func warningMessage(w asm.Warning) string {
	switch v := w.(type) {
	case asm.TokenTrimmed:
		return fmt.Sprintf("token %q trimmed to 64 bytes", v.Original)
	case asm.InstructionModeDefinedMoreThanOnce:
		return "instruction mode flag given more than once"
	case asm.MacroUnused:
		return fmt.Sprintf("macro %q is never used", v.Name)
	case asm.LabelUnused:
		return fmt.Sprintf("label %q is never used", v.Name)
	default:
		return "warning"
	}
}

func render(w *bufio.Writer, lines []sourceLine, fileName, kind string, color int, message string, span asm.Span, other *asm.Span, useColor bool, termWidth int) {
	header(w, fileName, span, kind, message, color, useColor)
	snippet(w, lines, span, color, useColor, false, termWidth)
	if other != nil {
		fmt.Fprintf(w, "  %s: see also:\n", fileName)
		snippet(w, lines, *other, colorDim, useColor, true, termWidth)
	}
}

func header(w *bufio.Writer, fileName string, span asm.Span, kind, message string, color int, useColor bool) {
	fmt.Fprintf(w, "%s:%d:%d: ", fileName, span.Line, span.Column)
	if useColor {
		setColor(w, color)
		fmt.Fprint(w, kind)
		resetColor(w)
	} else {
		fmt.Fprint(w, kind)
	}
	fmt.Fprintf(w, ": %s\n", message)
}

func snippet(w *bufio.Writer, lines []sourceLine, span asm.Span, color int, useColor, dim bool, termWidth int) {
	line := lineAt(lines, span)
	text := expandTabs(line.text)
	if termWidth > 4 && len(text) > termWidth-4 {
		text = append(append([]byte{}, text[:termWidth-5]...), "…"...)
	}
	fmt.Fprintf(w, "    %s\n", text)

	col := displayColumn(line.text, span.From-line.start)
	width := displayWidth(line.text, span.From-line.start, span.To-line.start)
	if width < 1 {
		width = 1
	}

	fmt.Fprint(w, "    ")
	for i := 0; i < col; i++ {
		w.WriteByte(' ')
	}
	if useColor {
		setColor(w, color)
	}
	mark := byte('^')
	if dim {
		mark = '~'
	}
	for i := 0; i < width; i++ {
		w.WriteByte(mark)
	}
	if useColor {
		resetColor(w)
	}
	w.WriteByte('\n')
}

// displayColumn converts a byte offset into the column it renders at,
// expanding tabs to 8-column stops and counting wide runes with runewidth.
func displayColumn(line []byte, byteOffset int) int {
	col := 0
	for i := 0; i < byteOffset && i < len(line); {
		if line[i] == '\t' {
			col += 8 - col%8
			i++
			continue
		}
		r, size := decodeRune(line[i:])
		col += runewidth.RuneWidth(r)
		i += size
	}
	return col
}

func displayWidth(line []byte, from, to int) int {
	return displayColumn(line, to) - displayColumn(line, from)
}

func expandTabs(line []byte) []byte {
	var out bytes.Buffer
	col := 0
	for i := 0; i < len(line); {
		if line[i] == '\t' {
			n := 8 - col%8
			for j := 0; j < n; j++ {
				out.WriteByte(' ')
			}
			col += n
			i++
			continue
		}
		r, size := decodeRune(line[i:])
		out.Write(line[i : i+size])
		col += runewidth.RuneWidth(r)
		i += size
	}
	return out.Bytes()
}

func decodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	return utf8.DecodeRune(b)
}

// setColor and resetColor write raw VT100 SGR escapes directly rather than
// through a styling dependency: a renderer that only ever needs bold/red/yellow/dim has
// nothing to gain from a general-purpose terminal-styling library.
func setColor(w *bufio.Writer, color int) {
	w.WriteByte('\033')
	w.WriteByte('[')
	if color == colorDim {
		w.WriteString("2m")
		return
	}
	w.WriteByte('1')
	w.WriteByte(';')
	w.WriteByte('3')
	w.WriteByte('0' + byte(color))
	w.WriteByte('m')
}

func resetColor(w *bufio.Writer) {
	w.WriteByte('\033')
	w.WriteByte('[')
	w.WriteByte('0')
	w.WriteByte('m')
}

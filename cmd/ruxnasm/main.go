package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/karolbelina/ruxnasm/asm"
	"github.com/karolbelina/ruxnasm/internal/ngi"
	"github.com/karolbelina/ruxnasm/reporter"
)

type colorMode string

func (m *colorMode) String() string { return string(*m) }
func (m *colorMode) Set(s string) error {
	switch colorMode(s) {
	case "auto", "always", "never":
		*m = colorMode(s)
		return nil
	default:
		return errors.Errorf("invalid -color value %q, want auto, always or never", s)
	}
}

var (
	outFileName string
	werror      bool
	quiet       bool
	color       = colorMode("auto")
)

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "ruxnasm: %v\n", err)
	os.Exit(1)
}

func main() {
	var err error
	defer func() { atExit(err) }()

	flag.StringVar(&outFileName, "o", "", "write the assembled image to `file`")
	flag.BoolVar(&werror, "Werror", false, "treat warnings as a failure for the exit code")
	flag.BoolVar(&quiet, "q", false, "suppress warning output")
	flag.Var(&color, "color", "colorize diagnostics: auto, always or never")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		err = errors.New("usage: ruxnasm [flags] <input> [<output>]")
		return
	}
	inputName := args[0]
	if outFileName == "" {
		if len(args) == 2 {
			outFileName = args[1]
		} else {
			outFileName = "a.rom"
		}
	}

	source, readErr := os.ReadFile(inputName)
	if readErr != nil {
		err = errors.Wrapf(readErr, "reading %s", inputName)
		return
	}

	res := asm.Assemble(source)

	useColor := color == "always" || (color == "auto" && term.IsTerminal(int(os.Stderr.Fd())))
	warnings := res.Warnings
	if quiet {
		warnings = nil
	}
	reporter.Render(os.Stderr, source, inputName, res.Errors, warnings, useColor)

	if !res.Ok() {
		err = errors.Errorf("%s: assembly failed with %d error(s)", inputName, len(res.Errors))
		return
	}

	out, createErr := os.Create(outFileName)
	if createErr != nil {
		err = errors.Wrapf(createErr, "creating %s", outFileName)
		return
	}
	defer out.Close()

	ew := ngi.NewErrWriter(out)
	ew.Write(res.Bytes)
	if ew.Err != nil {
		err = errors.Wrapf(ew.Err, "writing %s", outFileName)
		return
	}

	if werror && len(res.Warnings) > 0 {
		err = errors.Errorf("%s: %d warning(s) treated as errors", inputName, len(res.Warnings))
	}
}

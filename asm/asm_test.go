package asm_test

import (
	"errors"
	"testing"

	"github.com/karolbelina/ruxnasm/asm"
)

func TestAssemble_empty(t *testing.T) {
	res := asm.Assemble(nil)
	if !res.Ok() {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	if len(res.Bytes) != 0 {
		t.Errorf("expected empty image, got %d bytes", len(res.Bytes))
	}
}

func TestAssemble_scenarios(t *testing.T) {
	data := []struct {
		name string
		code string
		want []byte
	}{
		{
			name: "raw hex byte",
			code: "ab",
			want: []byte{0xab},
		},
		{
			name: "literal hex byte",
			code: "#ab",
			want: []byte{0x80, 0xab},
		},
		{
			name: "literal hex short",
			code: "#abcd",
			want: []byte{0x20, 0xab, 0xcd},
		},
		{
			name: "pad then raw byte",
			code: "|0110 ab",
			want: []byte{
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0xab,
			},
		},
		{
			name: "absolute label reference",
			code: "@start ;start",
			want: []byte{0x20, 0x01, 0x00},
		},
		{
			name: "instruction with mode flags",
			code: "ADD2kr",
			want: []byte{byte(asm.OpADD) | 0x20 | 0x40 | 0x80},
		},
		{
			name: "sublabel scoped reference",
			code: "@start &sub ;start/sub",
			want: []byte{0x20, 0x01, 0x00},
		},
		{
			name: "macro expansion",
			code: "%pair { #01 #01 } pair",
			want: []byte{0x80, 0x01, 0x80, 0x01},
		},
	}

	for _, tt := range data {
		t.Run(tt.name, func(t *testing.T) {
			res := asm.Assemble([]byte(tt.code))
			if !res.Ok() {
				t.Fatalf("expected success, got errors: %v", res.Errors)
			}
			if string(res.Bytes) != string(tt.want) {
				t.Errorf("got % x, want % x", res.Bytes, tt.want)
			}
		})
	}
}

func TestAssemble_errors(t *testing.T) {
	data := []struct {
		name string
		code string
		want interface{}
	}{
		{
			name: "recursive macro",
			code: "%loop { loop } loop",
			want: asm.RecursiveMacro{},
		},
		{
			name: "undefined label",
			code: ";nowhere",
			want: asm.LabelUndefined{},
		},
		{
			name: "zero page address out of range",
			code: "@start |0200 .start",
			want: asm.AddressNotZeroPage{},
		},
		{
			name: "label defined twice",
			code: "@dup @dup",
			want: asm.LabelDefinedMoreThanOnce{},
		},
		{
			name: "sublabel without scope",
			code: "&orphan",
			want: asm.SublabelDefinedWithoutScope{},
		},
		{
			name: "padded backwards",
			code: "|0200 |0100",
			want: asm.PaddedBackwards{},
		},
	}

	for _, tt := range data {
		t.Run(tt.name, func(t *testing.T) {
			res := asm.Assemble([]byte(tt.code))
			if res.Ok() {
				t.Fatalf("expected failure, got bytes % x", res.Bytes)
			}
			found := false
			for _, err := range res.Errors {
				if sameKind(err, tt.want) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected an error of type %T, got %v", tt.want, res.Errors)
			}
		})
	}
}

func TestAssemble_unusedLabelWarning(t *testing.T) {
	res := asm.Assemble([]byte("@never_used BRK"))
	if !res.Ok() {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	found := false
	for _, w := range res.Warnings {
		if _, ok := w.(asm.LabelUnused); ok {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a LabelUnused warning, got %v", res.Warnings)
	}
}

func TestAssemble_capitalizedLabelExemptFromUnusedWarning(t *testing.T) {
	res := asm.Assemble([]byte("@Exported BRK"))
	if !res.Ok() {
		t.Fatalf("expected success, got errors: %v", res.Errors)
	}
	for _, w := range res.Warnings {
		if _, ok := w.(asm.LabelUnused); ok {
			t.Errorf("did not expect a LabelUnused warning for a capitalized label")
		}
	}
}

func sameKind(err asm.Error, want interface{}) bool {
	switch want.(type) {
	case asm.RecursiveMacro:
		// a recursive-macro error is raised while expanding the body of the
		// macro it invokes from, so it reaches here wrapped in a MacroError.
		var rm asm.RecursiveMacro
		return errors.As(err, &rm)
	case asm.LabelUndefined:
		_, ok := err.(asm.LabelUndefined)
		return ok
	case asm.AddressNotZeroPage:
		_, ok := err.(asm.AddressNotZeroPage)
		return ok
	case asm.LabelDefinedMoreThanOnce:
		_, ok := err.(asm.LabelDefinedMoreThanOnce)
		return ok
	case asm.SublabelDefinedWithoutScope:
		_, ok := err.(asm.SublabelDefinedWithoutScope)
		return ok
	case asm.PaddedBackwards:
		_, ok := err.(asm.PaddedBackwards)
		return ok
	default:
		return false
	}
}

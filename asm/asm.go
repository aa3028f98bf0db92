// Package asm converts human-readable mnemonic text into vm instructions.
//
// The format is line-oriented: one instruction per line, mnemonics
// case-insensitive, a single decimal immediate after loadcon. Blank lines
// and text after '#' are ignored. The engine itself never parses strings;
// this package is the boundary where text becomes validated instructions.
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/stackvm/vm"
)

// Parse assembles a full program from source text. Errors carry the
// 1-based line number and wrap the vm construction errors, so callers can
// match with errors.Is against vm.ErrInvalidOpcode and friends.
func Parse(src string) ([]vm.Instruction, error) {
	program := make([]vm.Instruction, 0, 16)
	for num, line := range strings.Split(src, "\n") {
		in, ok, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", num+1, err)
		}
		if ok {
			program = append(program, in)
		}
	}
	return program, nil
}

// ParseLines assembles a program given as one mnemonic string per element.
func ParseLines(lines []string) ([]vm.Instruction, error) {
	return Parse(strings.Join(lines, "\n"))
}

// parseLine assembles a single line. ok is false for blank and
// comment-only lines.
func parseLine(line string) (in vm.Instruction, ok bool, err error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return vm.Instruction{}, false, nil

	case 1:
		op, err := vm.OpcodeForMnemonic(strings.ToLower(fields[0]))
		if err != nil {
			return vm.Instruction{}, false, err
		}
		in, err := vm.NewInstruction(op)
		return in, err == nil, err

	case 2:
		op, err := vm.OpcodeForMnemonic(strings.ToLower(fields[0]))
		if err != nil {
			return vm.Instruction{}, false, err
		}
		operand, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return vm.Instruction{}, false, fmt.Errorf("bad operand %q for %s", fields[1], op)
		}
		in, err := vm.NewInstructionWithOperand(op, operand)
		return in, err == nil, err

	default:
		return vm.Instruction{}, false, fmt.Errorf("too many fields in %q", strings.TrimSpace(line))
	}
}

// Format renders a program as assembler text, one instruction per line.
// For any valid program, Parse(Format(p)) reproduces p.
func Format(program []vm.Instruction) string {
	var b strings.Builder
	for _, in := range program {
		b.WriteString(in.String())
		b.WriteByte('\n')
	}
	return b.String()
}

package vm

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Construction errors
// ---------------------------------------------------------------------------
// These are the only errors that cross the engine boundary: everything is
// validated when an instruction (or seeded stack) is built, never while a
// program is running.

var (
	// ErrInvalidOpcode reports an opcode outside the instruction set.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrMissingOperand reports a loadcon built without an operand.
	ErrMissingOperand = errors.New("missing operand")

	// ErrUnexpectedOperand reports an operand given to a non-loadcon opcode.
	ErrUnexpectedOperand = errors.New("unexpected operand")

	// ErrSeedExceedsCapacity reports initial stack contents longer than the
	// stack's capacity.
	ErrSeedExceedsCapacity = errors.New("seed exceeds stack capacity")
)

func invalidOpcodeError(name string) error {
	return fmt.Errorf("%w: %q", ErrInvalidOpcode, name)
}

// ---------------------------------------------------------------------------
// Instruction
// ---------------------------------------------------------------------------

// Instruction is one immutable machine operation: an opcode plus, for
// loadcon only, an immediate operand. Instructions are comparable with ==;
// equality and String are diagnostics, not execution semantics.
type Instruction struct {
	op      Opcode
	operand int64
}

// NewInstruction builds an operand-less instruction. It fails with
// ErrInvalidOpcode for opcodes outside the set and ErrMissingOperand for
// loadcon, which requires one.
func NewInstruction(op Opcode) (Instruction, error) {
	if !op.Valid() {
		return Instruction{}, fmt.Errorf("%w: %d", ErrInvalidOpcode, int(op))
	}
	if op.HasOperand() {
		return Instruction{}, fmt.Errorf("%w: %s requires an operand", ErrMissingOperand, op)
	}
	return Instruction{op: op}, nil
}

// NewInstructionWithOperand builds a loadcon carrying the given immediate.
// Every other opcode fails with ErrUnexpectedOperand.
func NewInstructionWithOperand(op Opcode, operand int64) (Instruction, error) {
	if !op.Valid() {
		return Instruction{}, fmt.Errorf("%w: %d", ErrInvalidOpcode, int(op))
	}
	if !op.HasOperand() {
		return Instruction{}, fmt.Errorf("%w: %s takes no operand", ErrUnexpectedOperand, op)
	}
	return Instruction{op: op, operand: operand}, nil
}

// Op returns the instruction's opcode.
func (in Instruction) Op() Opcode {
	return in.op
}

// Operand returns the immediate operand and whether one is present
// (present only for loadcon).
func (in Instruction) Operand() (int64, bool) {
	return in.operand, in.op.HasOperand()
}

// String implements the Stringer interface.
func (in Instruction) String() string {
	if in.op.HasOperand() {
		return fmt.Sprintf("%s %d", in.op, in.operand)
	}
	return in.op.String()
}

package vm

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Opcode identifies one operation in the machine's fixed, closed
// instruction set. Any value outside the declared constants is invalid
// and rejected at instruction construction time.
type Opcode int

const (
	OpAdd     Opcode = iota // pop a, pop b, push a+b
	OpNegate                // pop a, push -a
	OpEqual                 // pop a, pop b, push 1 if a==b else 0
	OpZero                  // push 0
	OpOne                   // push 1
	OpLoadcon               // push immediate operand
	OpBr                    // pop offset, add it to the program counter
	OpBrFalse               // pop offset, pop cond; branch when cond is not 1
	OpDup                   // duplicate top of stack
	OpMpy                   // pop a, pop b, push a*b
	OpWrite                 // pop, emit to the write sink
	OpSwap                  // reverse the top two elements
	OpLess                  // pop top, pop second, push 1 if second<top else 0

	numOpcodes // must remain last
)

// ---------------------------------------------------------------------------
// Opcode metadata
// ---------------------------------------------------------------------------

// OpcodeInfo holds metadata about an opcode.
type OpcodeInfo struct {
	Mnemonic   string // assembler name
	HasOperand bool   // true only for loadcon
	MinStack   int    // stack elements required before execution
}

// opcodeTable maps opcodes to their metadata.
var opcodeTable = [numOpcodes]OpcodeInfo{
	OpAdd:     {"add", false, 2},
	OpNegate:  {"negate", false, 1},
	OpEqual:   {"equal", false, 2},
	OpZero:    {"zero", false, 0},
	OpOne:     {"one", false, 0},
	OpLoadcon: {"loadcon", true, 0},
	OpBr:      {"br", false, 1},
	OpBrFalse: {"br_false", false, 2},
	OpDup:     {"dup", false, 1},
	OpMpy:     {"mpy", false, 2},
	OpWrite:   {"write", false, 1},
	OpSwap:    {"swap", false, 2},
	OpLess:    {"less", false, 2},
}

// mnemonicTable maps assembler names back to opcodes.
var mnemonicTable = func() map[string]Opcode {
	m := make(map[string]Opcode, numOpcodes)
	for op, info := range opcodeTable {
		m[info.Mnemonic] = Opcode(op)
	}
	return m
}()

// Valid reports whether op is a member of the instruction set.
func (op Opcode) Valid() bool {
	return op >= 0 && op < numOpcodes
}

// Info returns the metadata for an opcode.
func (op Opcode) Info() OpcodeInfo {
	if !op.Valid() {
		return OpcodeInfo{Mnemonic: "unknown"}
	}
	return opcodeTable[op]
}

// HasOperand reports whether op carries an immediate operand (loadcon only).
func (op Opcode) HasOperand() bool {
	return op.Info().HasOperand
}

// MinStack returns the number of stack elements op requires; an execution
// attempt below this depth is skipped as a no-op.
func (op Opcode) MinStack() int {
	return op.Info().MinStack
}

// String implements the Stringer interface.
func (op Opcode) String() string {
	return op.Info().Mnemonic
}

// OpcodeForMnemonic resolves an assembler mnemonic to its opcode.
// Unknown mnemonics are reported as ErrInvalidOpcode.
func OpcodeForMnemonic(name string) (Opcode, error) {
	if op, ok := mnemonicTable[name]; ok {
		return op, nil
	}
	return 0, invalidOpcodeError(name)
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"strings"
)

// Opcode is an instruction selector.
type Opcode uint16

const (
	OP_HALT = Opcode(0)
	OP_SET  = Opcode(1)
	OP_PUSH = Opcode(2)
	OP_POP  = Opcode(3)
	OP_EQ   = Opcode(4)
	OP_GT   = Opcode(5)
	OP_JMP  = Opcode(6)
	OP_JT   = Opcode(7)
	OP_JF   = Opcode(8)
	OP_ADD  = Opcode(9)
	OP_MULT = Opcode(10)
	OP_MOD  = Opcode(11)
	OP_AND  = Opcode(12)
	OP_OR   = Opcode(13)
	OP_NOT  = Opcode(14)
	OP_RMEM = Opcode(15)
	OP_WMEM = Opcode(16)
	OP_CALL = Opcode(17)
	OP_RET  = Opcode(18)
	OP_OUT  = Opcode(19)
	OP_IN   = Opcode(20)
	OP_NOOP = Opcode(21)

	OP_UNKNOWN = Opcode(0xffff) // Selector not yet decoded, or not an opcode.
)

// ArgKind is how an instruction uses one of its operands.
type ArgKind int

const (
	ARG_REG = ArgKind(0) // Destination; must name a register.
	ARG_VAL = ArgKind(1) // Source; resolved to a value.
)

type opcodeInfo struct {
	name string
	args []ArgKind
}

var opcodeTable = [...]opcodeInfo{
	OP_HALT: {"halt", nil},
	OP_SET:  {"set", []ArgKind{ARG_REG, ARG_VAL}},
	OP_PUSH: {"push", []ArgKind{ARG_VAL}},
	OP_POP:  {"pop", []ArgKind{ARG_REG}},
	OP_EQ:   {"eq", []ArgKind{ARG_REG, ARG_VAL, ARG_VAL}},
	OP_GT:   {"gt", []ArgKind{ARG_REG, ARG_VAL, ARG_VAL}},
	OP_JMP:  {"jmp", []ArgKind{ARG_VAL}},
	OP_JT:   {"jt", []ArgKind{ARG_VAL, ARG_VAL}},
	OP_JF:   {"jf", []ArgKind{ARG_VAL, ARG_VAL}},
	OP_ADD:  {"add", []ArgKind{ARG_REG, ARG_VAL, ARG_VAL}},
	OP_MULT: {"mult", []ArgKind{ARG_REG, ARG_VAL, ARG_VAL}},
	OP_MOD:  {"mod", []ArgKind{ARG_REG, ARG_VAL, ARG_VAL}},
	OP_AND:  {"and", []ArgKind{ARG_REG, ARG_VAL, ARG_VAL}},
	OP_OR:   {"or", []ArgKind{ARG_REG, ARG_VAL, ARG_VAL}},
	OP_NOT:  {"not", []ArgKind{ARG_REG, ARG_VAL}},
	OP_RMEM: {"rmem", []ArgKind{ARG_REG, ARG_VAL}},
	OP_WMEM: {"wmem", []ArgKind{ARG_VAL, ARG_VAL}},
	OP_CALL: {"call", []ArgKind{ARG_VAL}},
	OP_RET:  {"ret", nil},
	OP_OUT:  {"out", []ArgKind{ARG_VAL}},
	OP_IN:   {"in", []ArgKind{ARG_REG}},
	OP_NOOP: {"noop", nil},
}

// Valid reports whether the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	return int(op) < len(opcodeTable)
}

// Args returns the operand signature of the opcode.
func (op Opcode) Args() []ArgKind {
	if !op.Valid() {
		return nil
	}
	return opcodeTable[op].args
}

func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("op%d", uint16(op))
	}
	return opcodeTable[op].name
}

// Instruction is a fetched and decoded instruction.
type Instruction struct {
	Ip       uint16    // Address of the opcode selector.
	Opcode   Opcode    // Selector.
	Operands []Operand // Decoded operands, in signature order.
}

// Size returns the number of words the instruction occupies.
func (in Instruction) Size() int {
	return 1 + len(in.Operands)
}

// String returns the instruction in assembly-like notation.
func (in Instruction) String() string {
	words := []string{in.Opcode.String()}
	for _, op := range in.Operands {
		words = append(words, op.String())
	}
	return strings.Join(words, " ")
}

// Package cpu implements the synvm virtual machine.
//
// The machine has a 32768 word memory, eight registers (r0-r7), an
// unbounded stack, and a 22 opcode instruction set. All arithmetic is
// performed on 15-bit Words, modulo 32768.
//
// Each memory word is either a literal value (0-32767) or a register
// reference (32768-32775, naming r0-r7). Instructions are an opcode
// selector followed by zero to three such operands.
//
// The CPU reads bytes through an Input and writes runes through an
// Output; anything else the host wants to do with the console, such
// as dropping into a monitor, is the business of those collaborators.
package cpu

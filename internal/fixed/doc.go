// Package fixed implements codecs over hand-built layouts for native programs
// that carry no discriminators: instructions are keyed by a leading opcode and
// accounts are told apart by their data size.
package fixed

package asm

import (
	"strconv"
	"strings"
)

const numRegisters = 32

var registerNames = map[string]uint8{
	"zero": 0, "at": 1,
	"v0": 2, "v1": 3,
	"a0": 4, "a1": 5, "a2": 6, "a3": 7,
	"t0": 8, "t1": 9, "t2": 10, "t3": 11, "t4": 12, "t5": 13, "t6": 14, "t7": 15,
	"s0": 16, "s1": 17, "s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23,
	"t8": 24, "t9": 25,
	"k0": 26, "k1": 27,
	"gp": 28, "sp": 29, "fp": 30, "ra": 31,
}

// parseRegister resolves "$n", "n" or a conventional name such as "$t0".
func parseRegister(token string, lineNo int) (uint8, error) {
	name := strings.ToLower(strings.TrimPrefix(token, "$"))
	if name == "" {
		return 0, &InvalidRegisterError{Line: lineNo, Token: token}
	}

	if idx, ok := registerNames[name]; ok {
		return idx, nil
	}

	n, err := strconv.Atoi(name)
	if err != nil || n < 0 || n >= numRegisters {
		return 0, &InvalidRegisterError{Line: lineNo, Token: token}
	}
	return uint8(n), nil
}

package script

import "fmt"

// Opcode is a single script instruction byte.
type Opcode byte

// Opcode values, named after what they do.
const (
	PushZero          Opcode = 0x00
	PushDataMin       Opcode = 0x01
	PushDataMax       Opcode = 0x4B
	PushDataByte      Opcode = 0x4C
	PushDataShort     Opcode = 0x4D
	PushDataInteger   Opcode = 0x4E
	PushNegativeOne   Opcode = 0x4F
	Reserved          Opcode = 0x50
	PushOne           Opcode = 0x51
	PushSixteen       Opcode = 0x60
	NoOperation       Opcode = 0x61
	PushVersion       Opcode = 0x62
	If                Opcode = 0x63
	NotIf             Opcode = 0x64
	IfVersion         Opcode = 0x65
	IfNotVersion      Opcode = 0x66
	Else              Opcode = 0x67
	EndIf             Opcode = 0x68
	Verify            Opcode = 0x69
	Return            Opcode = 0x6A
	MoveToAltStack    Opcode = 0x6B
	MoveFromAltStack  Opcode = 0x6C
	PopTwo            Opcode = 0x6D
	Copy2ndThen1st    Opcode = 0x6E
	Copy3rdThen2nd1st Opcode = 0x6F
	Copy4thThen3rd    Opcode = 0x70
	Move6thThen5th    Opcode = 0x71
	SwapPairs         Opcode = 0x72
	CopyIfTrue        Opcode = 0x73
	PushStackSize     Opcode = 0x74
	Pop               Opcode = 0x75
	Copy1st           Opcode = 0x76
	Remove2nd         Opcode = 0x77
	Copy2nd           Opcode = 0x78
	CopyNth           Opcode = 0x79
	MoveNth           Opcode = 0x7A
	Rotate            Opcode = 0x7B
	Swap              Opcode = 0x7C
	Copy1stToUnder2nd Opcode = 0x7D
	Concatenate       Opcode = 0x7E
	Split             Opcode = 0x7F
	NumberToBytes     Opcode = 0x80
	EncodeNumber      Opcode = 0x81
	Push1stByteCount  Opcode = 0x82
	BitwiseInvert     Opcode = 0x83
	BitwiseAnd        Opcode = 0x84
	BitwiseOr         Opcode = 0x85
	BitwiseXor        Opcode = 0x86
	IsEqual           Opcode = 0x87
	IsEqualThenVerify Opcode = 0x88
	Reserved1         Opcode = 0x89
	Reserved2         Opcode = 0x8A
	AddOne            Opcode = 0x8B
	SubtractOne       Opcode = 0x8C
	MultiplyByTwo     Opcode = 0x8D
	DivideByTwo       Opcode = 0x8E
	Negate            Opcode = 0x8F
	AbsoluteValue     Opcode = 0x90
	Not               Opcode = 0x91
	IsTrue            Opcode = 0x92
	Add               Opcode = 0x93
	Subtract          Opcode = 0x94
	Multiply          Opcode = 0x95
	Divide            Opcode = 0x96
	Modulus           Opcode = 0x97
	ShiftLeft         Opcode = 0x98
	ShiftRight        Opcode = 0x99
	IntegerAnd        Opcode = 0x9A
	IntegerOr         Opcode = 0x9B

	IsNumericallyEqual           Opcode = 0x9C
	IsNumericallyEqualThenVerify Opcode = 0x9D
	IsNotNumericallyEqual        Opcode = 0x9E
	IsLessThan                   Opcode = 0x9F
	IsGreaterThan                Opcode = 0xA0
	IsLessThanOrEqual            Opcode = 0xA1
	IsGreaterThanOrEqual         Opcode = 0xA2
	Min                          Opcode = 0xA3
	Max                          Opcode = 0xA4
	IsWithinRange                Opcode = 0xA5

	Ripemd160                     Opcode = 0xA6
	Sha1                          Opcode = 0xA7
	Sha256                        Opcode = 0xA8
	Hash160                       Opcode = 0xA9
	DoubleSha256                  Opcode = 0xAA
	CodeSeparator                 Opcode = 0xAB
	CheckSignature                Opcode = 0xAC
	CheckSignatureThenVerify      Opcode = 0xAD
	CheckMultiSignature           Opcode = 0xAE
	CheckMultiSignatureThenVerify Opcode = 0xAF

	NoOperation1                  Opcode = 0xB0
	CheckLockTimeThenVerify       Opcode = 0xB1
	CheckSequenceNumberThenVerify Opcode = 0xB2
	NoOperation4                  Opcode = 0xB3
	NoOperation10                 Opcode = 0xB9
	CheckDataSignature            Opcode = 0xBA
	CheckDataSignatureThenVerify  Opcode = 0xBB
	ReverseBytes                  Opcode = 0xBC

	PushInputIndex             Opcode = 0xC0
	PushActiveBytecode         Opcode = 0xC1
	PushTransactionVersion     Opcode = 0xC2
	PushTransactionInputCount  Opcode = 0xC3
	PushTransactionOutputCount Opcode = 0xC4
	PushTransactionLockTime    Opcode = 0xC5
	PushPreviousOutputValue    Opcode = 0xC6
	PushPreviousOutputBytecode Opcode = 0xC7
	PushPreviousOutputTxHash   Opcode = 0xC8
	PushPreviousOutputIndex    Opcode = 0xC9
	PushInputBytecode          Opcode = 0xCA
	PushInputSequenceNumber    Opcode = 0xCB
	PushOutputValue            Opcode = 0xCC
	PushOutputBytecode         Opcode = 0xCD
)

// Family groups opcodes that share one dispatch function.
type Family uint8

const (
	FamilyInvalid Family = iota
	FamilyPush
	FamilyDynamicValue
	FamilyControl
	FamilyStack
	FamilyString
	FamilyBitwise
	FamilyComparison
	FamilyArithmetic
	FamilyCryptographic
	FamilyIntrospection
	FamilyLockTime
	FamilyNothing
)

var familyNames = map[Family]string{
	FamilyInvalid:       "invalid",
	FamilyPush:          "push",
	FamilyDynamicValue:  "dynamic_value",
	FamilyControl:       "control",
	FamilyStack:         "stack",
	FamilyString:        "string",
	FamilyBitwise:       "bitwise",
	FamilyComparison:    "comparison",
	FamilyArithmetic:    "arithmetic",
	FamilyCryptographic: "cryptographic",
	FamilyIntrospection: "introspection",
	FamilyLockTime:      "lock_time",
	FamilyNothing:       "nothing",
}

func (f Family) String() string { return familyNames[f] }

type opcodeInfo struct {
	name     string
	family   Family
	disabled bool
}

var opcodeTable [256]opcodeInfo

func init() {
	set := func(op Opcode, name string, family Family) {
		opcodeTable[op] = opcodeInfo{name: name, family: family}
	}
	disable := func(op Opcode, name string, family Family) {
		opcodeTable[op] = opcodeInfo{name: name, family: family, disabled: true}
	}

	set(PushZero, "PUSH_ZERO", FamilyPush)
	for op := PushDataMin; op <= PushDataMax; op++ {
		set(op, fmt.Sprintf("PUSH_DATA_%d", int(op)), FamilyPush)
	}
	set(PushDataByte, "PUSH_DATA_BYTE", FamilyPush)
	set(PushDataShort, "PUSH_DATA_SHORT", FamilyPush)
	set(PushDataInteger, "PUSH_DATA_INTEGER", FamilyPush)
	set(PushNegativeOne, "PUSH_NEGATIVE_ONE", FamilyPush)
	for op := PushOne; op <= PushSixteen; op++ {
		set(op, fmt.Sprintf("PUSH_VALUE_%d", int(op-PushOne)+1), FamilyPush)
	}
	set(PushVersion, "PUSH_VERSION", FamilyInvalid)

	set(PushStackSize, "PUSH_STACK_SIZE", FamilyDynamicValue)
	set(Copy1st, "COPY_1ST", FamilyDynamicValue)
	set(CopyNth, "COPY_NTH", FamilyDynamicValue)
	set(Copy2nd, "COPY_2ND", FamilyDynamicValue)
	set(Copy2ndThen1st, "COPY_2ND_THEN_1ST", FamilyDynamicValue)
	set(Copy3rdThen2nd1st, "COPY_3RD_THEN_2ND_THEN_1ST", FamilyDynamicValue)
	set(Copy4thThen3rd, "COPY_4TH_THEN_3RD", FamilyDynamicValue)
	set(Copy1stToUnder2nd, "COPY_1ST_THEN_MOVE_TO_3RD", FamilyDynamicValue)

	set(If, "IF", FamilyControl)
	set(NotIf, "NOT_IF", FamilyControl)
	set(Else, "ELSE", FamilyControl)
	set(EndIf, "END_IF", FamilyControl)
	set(Verify, "VERIFY", FamilyControl)
	set(Return, "RETURN", FamilyControl)
	disable(IfVersion, "IF_VERSION", FamilyControl)
	disable(IfNotVersion, "IF_NOT_VERSION", FamilyControl)

	set(MoveToAltStack, "MOVE_TO_ALT_STACK", FamilyStack)
	set(MoveFromAltStack, "MOVE_FROM_ALT_STACK", FamilyStack)
	set(PopTwo, "POP_THEN_POP", FamilyStack)
	set(Move6thThen5th, "MOVE_6TH_THEN_5TH", FamilyStack)
	set(SwapPairs, "SWAP_1ST_WITH_3RD_THEN_2ND_WITH_4TH", FamilyStack)
	set(CopyIfTrue, "COPY_1ST_IF_TRUE", FamilyStack)
	set(Pop, "POP", FamilyStack)
	set(Remove2nd, "REMOVE_2ND", FamilyStack)
	set(MoveNth, "MOVE_NTH", FamilyStack)
	set(Rotate, "ROTATE_TOP_3", FamilyStack)
	set(Swap, "SWAP_1ST_WITH_2ND", FamilyStack)

	set(Concatenate, "CONCATENATE", FamilyString)
	set(Split, "SPLIT", FamilyString)
	set(NumberToBytes, "NUMBER_TO_BYTES", FamilyString)
	set(EncodeNumber, "ENCODE_NUMBER", FamilyString)
	set(Push1stByteCount, "PUSH_1ST_BYTE_COUNT", FamilyString)
	set(ReverseBytes, "REVERSE_BYTES", FamilyString)

	set(BitwiseInvert, "BITWISE_INVERT", FamilyBitwise)
	set(BitwiseAnd, "BITWISE_AND", FamilyBitwise)
	set(BitwiseOr, "BITWISE_OR", FamilyBitwise)
	set(BitwiseXor, "BITWISE_XOR", FamilyBitwise)
	set(ShiftLeft, "SHIFT_LEFT", FamilyBitwise)
	set(ShiftRight, "SHIFT_RIGHT", FamilyBitwise)

	set(IsEqual, "IS_EQUAL", FamilyComparison)
	set(IsEqualThenVerify, "IS_EQUAL_THEN_VERIFY", FamilyComparison)
	set(IsTrue, "IS_TRUE", FamilyComparison)
	set(IntegerAnd, "INTEGER_AND", FamilyComparison)
	set(IntegerOr, "INTEGER_OR", FamilyComparison)
	set(IsNumericallyEqual, "IS_NUMERICALLY_EQUAL", FamilyComparison)
	set(IsNumericallyEqualThenVerify, "IS_NUMERICALLY_EQUAL_THEN_VERIFY", FamilyComparison)
	set(IsNotNumericallyEqual, "IS_NOT_NUMERICALLY_EQUAL", FamilyComparison)
	set(IsLessThan, "IS_LESS_THAN", FamilyComparison)
	set(IsGreaterThan, "IS_GREATER_THAN", FamilyComparison)
	set(IsLessThanOrEqual, "IS_LESS_THAN_OR_EQUAL", FamilyComparison)
	set(IsGreaterThanOrEqual, "IS_GREATER_THAN_OR_EQUAL", FamilyComparison)
	set(IsWithinRange, "IS_WITHIN_RANGE", FamilyComparison)

	set(AddOne, "ADD_ONE", FamilyArithmetic)
	set(SubtractOne, "SUBTRACT_ONE", FamilyArithmetic)
	disable(MultiplyByTwo, "MULTIPLY_BY_TWO", FamilyArithmetic)
	disable(DivideByTwo, "DIVIDE_BY_TWO", FamilyArithmetic)
	set(Negate, "NEGATE", FamilyArithmetic)
	set(AbsoluteValue, "ABSOLUTE_VALUE", FamilyArithmetic)
	set(Not, "NOT", FamilyArithmetic)
	set(Add, "ADD", FamilyArithmetic)
	set(Subtract, "SUBTRACT", FamilyArithmetic)
	set(Multiply, "MULTIPLY", FamilyArithmetic)
	set(Divide, "DIVIDE", FamilyArithmetic)
	set(Modulus, "MODULUS", FamilyArithmetic)
	set(Min, "MIN", FamilyArithmetic)
	set(Max, "MAX", FamilyArithmetic)

	set(Ripemd160, "RIPEMD_160", FamilyCryptographic)
	set(Sha1, "SHA_1", FamilyCryptographic)
	set(Sha256, "SHA_256", FamilyCryptographic)
	set(Hash160, "SHA_256_THEN_RIPEMD_160", FamilyCryptographic)
	set(DoubleSha256, "DOUBLE_SHA_256", FamilyCryptographic)
	set(CodeSeparator, "CODE_SEPARATOR", FamilyCryptographic)
	set(CheckSignature, "CHECK_SIGNATURE", FamilyCryptographic)
	set(CheckSignatureThenVerify, "CHECK_SIGNATURE_THEN_VERIFY", FamilyCryptographic)
	set(CheckMultiSignature, "CHECK_MULTISIGNATURE", FamilyCryptographic)
	set(CheckMultiSignatureThenVerify, "CHECK_MULTISIGNATURE_THEN_VERIFY", FamilyCryptographic)
	set(CheckDataSignature, "CHECK_DATA_SIGNATURE", FamilyCryptographic)
	set(CheckDataSignatureThenVerify, "CHECK_DATA_SIGNATURE_THEN_VERIFY", FamilyCryptographic)

	set(PushInputIndex, "PUSH_INPUT_INDEX", FamilyIntrospection)
	set(PushActiveBytecode, "PUSH_ACTIVE_BYTECODE", FamilyIntrospection)
	set(PushTransactionVersion, "PUSH_TRANSACTION_VERSION", FamilyIntrospection)
	set(PushTransactionInputCount, "PUSH_TRANSACTION_INPUT_COUNT", FamilyIntrospection)
	set(PushTransactionOutputCount, "PUSH_TRANSACTION_OUTPUT_COUNT", FamilyIntrospection)
	set(PushTransactionLockTime, "PUSH_TRANSACTION_LOCK_TIME", FamilyIntrospection)
	set(PushPreviousOutputValue, "PUSH_PREVIOUS_OUTPUT_VALUE", FamilyIntrospection)
	set(PushPreviousOutputBytecode, "PUSH_PREVIOUS_OUTPUT_BYTECODE", FamilyIntrospection)
	set(PushPreviousOutputTxHash, "PUSH_PREVIOUS_OUTPUT_TRANSACTION_HASH", FamilyIntrospection)
	set(PushPreviousOutputIndex, "PUSH_PREVIOUS_OUTPUT_INDEX", FamilyIntrospection)
	set(PushInputBytecode, "PUSH_INPUT_BYTECODE", FamilyIntrospection)
	set(PushInputSequenceNumber, "PUSH_INPUT_SEQUENCE_NUMBER", FamilyIntrospection)
	set(PushOutputValue, "PUSH_OUTPUT_VALUE", FamilyIntrospection)
	set(PushOutputBytecode, "PUSH_OUTPUT_BYTECODE", FamilyIntrospection)

	set(CheckLockTimeThenVerify, "CHECK_LOCK_TIME_THEN_VERIFY", FamilyLockTime)
	set(CheckSequenceNumberThenVerify, "CHECK_SEQUENCE_NUMBER_THEN_VERIFY", FamilyLockTime)

	set(NoOperation, "NO_OPERATION", FamilyNothing)
	set(NoOperation1, "NO_OPERATION_1", FamilyNothing)
	for op := NoOperation4; op <= NoOperation10; op++ {
		set(op, fmt.Sprintf("NO_OPERATION_%d", int(op-NoOperation4)+4), FamilyNothing)
	}

	set(Reserved, "RESERVED", FamilyInvalid)
	set(Reserved1, "RESERVED_1", FamilyInvalid)
	set(Reserved2, "RESERVED_2", FamilyInvalid)
}

// Family returns the dispatch family of op. Unassigned bytes belong to FamilyInvalid.
func (op Opcode) Family() Family {
	return opcodeTable[op].family
}

// IsDisabled reports whether op fails whenever it is encountered, even inside a skipped branch.
// Reserved and unknown bytes only fail when executed. The bitwise shift family is disabled by
// upgrade state rather than here.
func (op Opcode) IsDisabled() bool {
	return opcodeTable[op].disabled
}

// IsPush reports whether op only pushes data.
func (op Opcode) IsPush() bool {
	return op <= PushSixteen && op != Reserved
}

// IsConditional reports whether op changes the control state and therefore runs in skipped branches.
func (op Opcode) IsConditional() bool {
	switch op {
	case If, NotIf, Else, EndIf:
		return true
	default:
		return false
	}
}

func (op Opcode) String() string {
	if name := opcodeTable[op].name; name != "" {
		return name
	}
	return fmt.Sprintf("INVALID_0x%02X", byte(op))
}

package script

import (
	"encoding/hex"
	"strings"
)

// Operation is one decoded instruction. Data is set for data pushes only.
type Operation struct {
	Opcode Opcode
	Data   []byte
}

// ApplyTo executes the operation. A false result fails the script; stack and context mutations
// made before the failure are not rolled back.
func (o Operation) ApplyTo(stack *Stack, controlState *ControlState, ctx *Context) bool {
	if ctx.isDisabled(o.Opcode) {
		return false
	}

	switch o.Opcode.Family() {
	case FamilyPush:
		return applyPush(o, stack, ctx)
	case FamilyDynamicValue:
		return applyDynamicValue(o, stack, ctx)
	case FamilyControl:
		return applyControl(o, stack, controlState, ctx)
	case FamilyStack:
		return applyStack(o, stack, ctx)
	case FamilyString:
		return applyString(o, stack, ctx)
	case FamilyBitwise:
		return applyBitwise(o, stack, ctx)
	case FamilyComparison:
		return applyComparison(o, stack, ctx)
	case FamilyArithmetic:
		return applyArithmetic(o, stack, ctx)
	case FamilyCryptographic:
		return applyCryptographic(o, stack, ctx)
	case FamilyIntrospection:
		return applyIntrospection(o, stack, ctx)
	case FamilyLockTime:
		return applyLockTime(o, stack, ctx)
	case FamilyNothing:
		return true
	default:
		return false
	}
}

// serializedSize is the byte count of the operation within its script.
func (o Operation) serializedSize() int {
	switch {
	case o.Opcode >= PushDataMin && o.Opcode <= PushDataMax:
		return 1 + len(o.Data)
	case o.Opcode == PushDataByte:
		return 2 + len(o.Data)
	case o.Opcode == PushDataShort:
		return 3 + len(o.Data)
	case o.Opcode == PushDataInteger:
		return 5 + len(o.Data)
	default:
		return 1
	}
}

func (o Operation) appendTo(b []byte) []byte {
	b = append(b, byte(o.Opcode))
	n := len(o.Data)
	switch o.Opcode {
	case PushDataByte:
		b = append(b, byte(n))
	case PushDataShort:
		b = append(b, byte(n), byte(n>>8))
	case PushDataInteger:
		b = append(b, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	}
	return append(b, o.Data...)
}

func (o Operation) String() string {
	if o.Opcode.Family() == FamilyPush && o.Data != nil {
		return o.Opcode.String() + " 0x" + strings.ToUpper(hex.EncodeToString(o.Data))
	}
	return o.Opcode.String()
}

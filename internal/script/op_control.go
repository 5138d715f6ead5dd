package script

func applyControl(o Operation, stack *Stack, controlState *ControlState, _ *Context) bool {
	switch o.Opcode {
	case If, NotIf:
		// Inside a skipped branch the condition is synthesized so nesting stays balanced.
		condition := false
		if controlState.ShouldExecute() {
			v := stack.Pop()
			if stack.DidOverflow() {
				return false
			}
			condition = v.Bool()
		}
		if o.Opcode == If {
			controlState.EnterIfBlock(condition)
		} else {
			controlState.EnterNotIfBlock(condition)
		}
		return true

	case Else:
		return controlState.ToggleElse()

	case EndIf:
		return controlState.ExitBlock()

	case Verify:
		v := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		return v.Bool()

	case Return:
		return false

	default:
		return false
	}
}

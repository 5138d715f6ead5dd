package script

type codeBlockType uint8

const (
	ifBlock codeBlockType = iota
	notIfBlock
)

type codeBlock struct {
	kind      codeBlockType
	condition bool
	enabled   bool
}

// ControlState tracks nested IF/NOT_IF/ELSE/END_IF blocks.
type ControlState struct {
	blocks []codeBlock
}

// NewControlState returns a state at top level, where execution is always enabled.
func NewControlState() *ControlState {
	return &ControlState{}
}

// ShouldExecute reports whether every enclosing block is enabled.
func (c *ControlState) ShouldExecute() bool {
	if len(c.blocks) == 0 {
		return true
	}
	return c.blocks[len(c.blocks)-1].enabled
}

// IsInCodeBlock reports whether at least one block is open.
func (c *ControlState) IsInCodeBlock() bool {
	return len(c.blocks) > 0
}

// Depth returns the number of open blocks.
func (c *ControlState) Depth() int {
	return len(c.blocks)
}

// EnterIfBlock opens a block that executes when condition is true.
func (c *ControlState) EnterIfBlock(condition bool) {
	c.enter(ifBlock, condition)
}

// EnterNotIfBlock opens a block that executes when condition is false.
func (c *ControlState) EnterNotIfBlock(condition bool) {
	c.enter(notIfBlock, !condition)
}

func (c *ControlState) enter(kind codeBlockType, condition bool) {
	outer := c.ShouldExecute()
	c.blocks = append(c.blocks, codeBlock{
		kind:      kind,
		condition: condition,
		enabled:   outer && condition,
	})
}

// ToggleElse flips the innermost block. It returns false outside a block.
func (c *ControlState) ToggleElse() bool {
	if len(c.blocks) == 0 {
		return false
	}
	top := &c.blocks[len(c.blocks)-1]
	top.condition = !top.condition
	top.enabled = c.outerEnabled() && top.condition
	return true
}

// ExitBlock closes the innermost block. It returns false outside a block.
func (c *ControlState) ExitBlock() bool {
	if len(c.blocks) == 0 {
		return false
	}
	c.blocks = c.blocks[:len(c.blocks)-1]
	return true
}

func (c *ControlState) outerEnabled() bool {
	if len(c.blocks) < 2 {
		return true
	}
	return c.blocks[len(c.blocks)-2].enabled
}

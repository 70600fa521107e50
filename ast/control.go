package ast

// ControlKind is the outcome of executing a statement. Break and return
// unwind to the nearest loop and function call respectively.
type ControlKind uint8

const (
	ControlLinear ControlKind = iota
	ControlBreak
	ControlReturn
)

func (c ControlKind) String() string {
	switch c {
	case ControlLinear:
		return "linear"
	case ControlBreak:
		return "break"
	case ControlReturn:
		return "return"
	default:
		panic("Unknown ControlKind.")
	}
}

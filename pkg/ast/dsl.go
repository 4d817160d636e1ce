package ast

// Helpers for building trees by hand.

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Stmts(statements ...Node) *Block {
	return NewBlock(statements)
}

func ID(name string) *VarAccess {
	return NewVarAccess(name)
}

func Let(name string, value Node) *VarAssign {
	return NewVarAssign(name, value)
}

func Bin(left Node, op Operator, right Node) *BinaryOp {
	return NewBinaryOp(left, op, right)
}

func Fn(name string, params []string, body ...Node) *FunctionDef {
	return NewFunctionDef(name, params, Stmts(body...), false)
}

func CallNamed(name string, args ...Node) *Call {
	return NewCall(ID(name), args)
}

func Ret(value Node) *Return {
	return NewReturn(value)
}

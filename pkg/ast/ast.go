package ast

type NodeType string

const (
	NodeNumberLiteral NodeType = "NumberLiteral"
	NodeStringLiteral NodeType = "StringLiteral"
	NodeListLiteral   NodeType = "ListLiteral"
	NodeBlock         NodeType = "Block"
	NodeVarAccess     NodeType = "VarAccess"
	NodeVarAssign     NodeType = "VarAssign"
	NodeBinaryOp      NodeType = "BinaryOp"
	NodeUnaryOp       NodeType = "UnaryOp"
	NodeIf            NodeType = "If"
	NodeFor           NodeType = "For"
	NodeWhile         NodeType = "While"
	NodeFunctionDef   NodeType = "FunctionDef"
	NodeCall          NodeType = "Call"
	NodeReturn        NodeType = "Return"
	NodeContinue      NodeType = "Continue"
	NodeBreak         NodeType = "Break"
)

// Node is implemented only by the types in this file; the unexported marker
// keeps the variant set closed.
type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type NodeType
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Operator names a binary or unary operation.
type Operator string

const (
	OpAdd       Operator = "+"
	OpSubtract  Operator = "-"
	OpMultiply  Operator = "*"
	OpDivide    Operator = "/"
	OpPower     Operator = "^"
	OpEqual     Operator = "=="
	OpNotEqual  Operator = "!="
	OpLess      Operator = "<"
	OpGreater   Operator = ">"
	OpLessEq    Operator = "<="
	OpGreaterEq Operator = ">="
	OpAnd       Operator = "and"
	OpOr        Operator = "or"
	OpNot       Operator = "not"
)

// Literals

type NumberLiteral struct {
	nodeImpl

	Value float64
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl

	Value string
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type ListLiteral struct {
	nodeImpl

	Elements []Node
}

func NewListLiteral(elements []Node) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

// Block is a statement list: a program, or the body of a block-form construct.
type Block struct {
	nodeImpl

	Statements []Node
}

func NewBlock(statements []Node) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

// Variables

type VarAccess struct {
	nodeImpl

	Name string
}

func NewVarAccess(name string) *VarAccess {
	return &VarAccess{nodeImpl: newNodeImpl(NodeVarAccess), Name: name}
}

type VarAssign struct {
	nodeImpl

	Name  string
	Value Node
}

func NewVarAssign(name string, value Node) *VarAssign {
	return &VarAssign{nodeImpl: newNodeImpl(NodeVarAssign), Name: name, Value: value}
}

// Operations

type BinaryOp struct {
	nodeImpl

	Left     Node
	Operator Operator
	Right    Node
}

func NewBinaryOp(left Node, operator Operator, right Node) *BinaryOp {
	return &BinaryOp{nodeImpl: newNodeImpl(NodeBinaryOp), Left: left, Operator: operator, Right: right}
}

type UnaryOp struct {
	nodeImpl

	Operator Operator
	Operand  Node
}

func NewUnaryOp(operator Operator, operand Node) *UnaryOp {
	return &UnaryOp{nodeImpl: newNodeImpl(NodeUnaryOp), Operator: operator, Operand: operand}
}

// Control flow

// IfCase is one `if`/`elif` arm. Block is set when the arm was written in
// block form (`then NEWLINE ... end`), in which case its value is discarded.
type IfCase struct {
	Condition Node
	Body      Node
	Block     bool
}

type ElseCase struct {
	Body  Node
	Block bool
}

type If struct {
	nodeImpl

	Cases []*IfCase
	Else  *ElseCase
}

func NewIf(cases []*IfCase, elseCase *ElseCase) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Cases: cases, Else: elseCase}
}

type For struct {
	nodeImpl

	Variable string
	Start    Node
	End      Node
	Step     Node
	Body     Node
	Block    bool
}

func NewFor(variable string, start, end, step, body Node, block bool) *For {
	return &For{
		nodeImpl: newNodeImpl(NodeFor),
		Variable: variable,
		Start:    start,
		End:      end,
		Step:     step,
		Body:     body,
		Block:    block,
	}
}

type While struct {
	nodeImpl

	Condition Node
	Body      Node
	Block     bool
}

func NewWhile(condition, body Node, block bool) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Condition: condition, Body: body, Block: block}
}

// Functions

// FunctionDef is a function literal. Name is empty for anonymous functions.
// AutoReturn marks the `-> expr` form whose body value is the call result.
type FunctionDef struct {
	nodeImpl

	Name       string
	Params     []string
	Body       Node
	AutoReturn bool
}

func NewFunctionDef(name string, params []string, body Node, autoReturn bool) *FunctionDef {
	return &FunctionDef{
		nodeImpl:   newNodeImpl(NodeFunctionDef),
		Name:       name,
		Params:     params,
		Body:       body,
		AutoReturn: autoReturn,
	}
}

type Call struct {
	nodeImpl

	Callee    Node
	Arguments []Node
}

func NewCall(callee Node, args []Node) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: args}
}

// Return carries an optional value; Value is nil for a bare `return`.
type Return struct {
	nodeImpl

	Value Node
}

func NewReturn(value Node) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Value: value}
}

type Continue struct {
	nodeImpl
}

func NewContinue() *Continue {
	return &Continue{nodeImpl: newNodeImpl(NodeContinue)}
}

type Break struct {
	nodeImpl
}

func NewBreak() *Break {
	return &Break{nodeImpl: newNodeImpl(NodeBreak)}
}

// Package cpsat 提供通用的布尔/整数线性约束求解后端
//
// 能力契约：创建布尔/有界整数变量、发布整系数线性(不)等式约束、
// 可选地最小化一个线性目标、带超时求解。
// 任何满足该契约的通用 CP/ILP/SAT 后端都可以替换 Solver 接口的实现。
package cpsat

import (
	"context"
	"fmt"
	"math"
)

// Var 变量句柄
type Var int

// Term 线性项：系数 * 变量
type Term struct {
	Var  Var
	Coef int
}

// LinearExpr 线性表达式（整系数项之和）
type LinearExpr []Term

// Sum 构造系数全为 1 的线性表达式
func Sum(vars ...Var) LinearExpr {
	e := make(LinearExpr, len(vars))
	for i, v := range vars {
		e[i] = Term{Var: v, Coef: 1}
	}
	return e
}

// NoLimit 约束边界哨兵（单边约束使用）
const NoLimit = math.MaxInt / 4

// linearConstraint lo ≤ Σ terms ≤ hi
type linearConstraint struct {
	terms LinearExpr
	lo    int
	hi    int
}

// Model 约束模型
type Model struct {
	lo          []int
	hi          []int
	names       []string
	constraints []linearConstraint
	objective   LinearExpr
	hasObj      bool
	invalid     error
}

// NewModel 创建空模型
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar 创建布尔变量（域 [0,1]）
func (m *Model) NewBoolVar(name string) Var {
	return m.NewIntVar(0, 1, name)
}

// NewIntVar 创建有界整数变量
func (m *Model) NewIntVar(lo, hi int, name string) Var {
	if lo > hi && m.invalid == nil {
		m.invalid = fmt.Errorf("变量 %s 的域非法: [%d,%d]", name, lo, hi)
	}
	m.lo = append(m.lo, lo)
	m.hi = append(m.hi, hi)
	m.names = append(m.names, name)
	return Var(len(m.lo) - 1)
}

// NumVars 返回变量数量
func (m *Model) NumVars() int {
	return len(m.lo)
}

// AddLinear 发布约束 lo ≤ Σ terms ≤ hi
func (m *Model) AddLinear(e LinearExpr, lo, hi int) {
	for _, t := range e {
		if int(t.Var) < 0 || int(t.Var) >= len(m.lo) {
			if m.invalid == nil {
				m.invalid = fmt.Errorf("约束引用了不存在的变量 %d", t.Var)
			}
			return
		}
	}
	terms := make(LinearExpr, len(e))
	copy(terms, e)
	m.constraints = append(m.constraints, linearConstraint{terms: terms, lo: lo, hi: hi})
}

// AddEquality 发布约束 Σ terms == rhs
func (m *Model) AddEquality(e LinearExpr, rhs int) {
	m.AddLinear(e, rhs, rhs)
}

// AddAtLeast 发布约束 Σ terms >= rhs
func (m *Model) AddAtLeast(e LinearExpr, rhs int) {
	m.AddLinear(e, rhs, NoLimit)
}

// AddAtMost 发布约束 Σ terms <= rhs
func (m *Model) AddAtMost(e LinearExpr, rhs int) {
	m.AddLinear(e, -NoLimit, rhs)
}

// Minimize 设置最小化目标
func (m *Model) Minimize(e LinearExpr) {
	obj := make(LinearExpr, len(e))
	copy(obj, e)
	m.objective = obj
	m.hasObj = true
}

// Status 求解状态
type Status int

const (
	StatusUnknown      Status = iota // 超时且未找到任何可行解
	StatusOptimal                    // 找到最优解（无目标时表示完成可行性证明）
	StatusFeasible                   // 超时，返回当前最好的可行解
	StatusInfeasible                 // 无可行解
	StatusModelInvalid               // 模型非法
)

// String 返回状态名
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

// Solution 求解结果
type Solution struct {
	Status    Status
	Objective int
	values    []int
}

// Value 返回变量取值（仅当 Status 为 OPTIMAL/FEASIBLE 时有意义）
func (s *Solution) Value(v Var) int {
	if s.values == nil || int(v) < 0 || int(v) >= len(s.values) {
		return 0
	}
	return s.values[int(v)]
}

// BoolValue 返回布尔变量取值
func (s *Solution) BoolValue(v Var) bool {
	return s.Value(v) == 1
}

// Solver 求解能力接口
// 由调用方注入，便于替换为任何兼容的约束求解后端
type Solver interface {
	Solve(ctx context.Context, m *Model) *Solution
}

// ObjectiveValue 按解的取值计算表达式的值
func (s *Solution) ObjectiveValue(e LinearExpr) int {
	total := 0
	for _, t := range e {
		total += t.Coef * s.Value(t.Var)
	}
	return total
}

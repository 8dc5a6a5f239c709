package cpsat

import (
	"context"
	"sync"
)

// BranchAndBound 缺省求解器：分支定界 + 界一致性传播
// Workers 大于 1 时以不同分支极性并行竞速，最先得出结论的搜索获胜
type BranchAndBound struct {
	Workers int
}

// NewSolver 创建缺省求解器
func NewSolver() *BranchAndBound {
	return &BranchAndBound{Workers: 1}
}

// Solve 求解模型
// 上下文取消或超时后：已有可行解返回 FEASIBLE，否则返回 UNKNOWN
func (s *BranchAndBound) Solve(ctx context.Context, m *Model) *Solution {
	if m.invalid != nil {
		return &Solution{Status: StatusModelInvalid}
	}
	if s.Workers <= 1 {
		return solveOne(ctx, m, false)
	}

	// 并行竞速：独立搜索共享同一个只读模型
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan *Solution, s.Workers)
	var wg sync.WaitGroup
	for i := 0; i < s.Workers; i++ {
		wg.Add(1)
		go func(reversed bool) {
			defer wg.Done()
			results <- solveOne(raceCtx, m, reversed)
		}(i%2 == 1)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var best *Solution
	for r := range results {
		switch r.Status {
		case StatusOptimal, StatusInfeasible, StatusModelInvalid:
			// 结论性结果，取消其余搜索
			cancel()
			return r
		default:
			if preferSolution(r, best) {
				best = r
			}
		}
	}
	if best == nil {
		best = &Solution{Status: StatusUnknown}
	}
	return best
}

// preferSolution 非结论性结果之间的偏好：有可行解优先，其次目标值更小
func preferSolution(r, best *Solution) bool {
	if best == nil {
		return true
	}
	if r.Status == StatusFeasible && best.Status != StatusFeasible {
		return true
	}
	if r.Status == StatusFeasible && best.Status == StatusFeasible {
		return r.Objective < best.Objective
	}
	return false
}

// solveOne 单线程分支定界搜索
func solveOne(ctx context.Context, m *Model, reversed bool) *Solution {
	sr := &search{m: m, ctx: ctx, reversed: reversed}
	lo := append([]int(nil), m.lo...)
	hi := append([]int(nil), m.hi...)
	sr.dfs(lo, hi)

	switch {
	case sr.aborted && sr.incumbent == nil:
		return &Solution{Status: StatusUnknown}
	case sr.aborted:
		return &Solution{Status: StatusFeasible, Objective: sr.bestObj, values: sr.incumbent}
	case sr.incumbent == nil:
		return &Solution{Status: StatusInfeasible}
	default:
		return &Solution{Status: StatusOptimal, Objective: sr.bestObj, values: sr.incumbent}
	}
}

// search 单次搜索的状态
type search struct {
	m         *Model
	ctx       context.Context
	reversed  bool // 分支极性：先探索区间的高半部
	incumbent []int
	bestObj   int
	aborted   bool
	satisfied bool // 纯可行性问题找到解后立即停止
}

// dfs 深度优先搜索一个节点，节点域由 lo/hi 描述
func (s *search) dfs(lo, hi []int) {
	if s.aborted || s.satisfied {
		return
	}
	if s.ctx.Err() != nil {
		s.aborted = true
		return
	}
	if !s.propagate(lo, hi) {
		return
	}

	// 选择第一个未固定的变量分支
	branch := -1
	for i := range lo {
		if lo[i] < hi[i] {
			branch = i
			break
		}
	}
	if branch < 0 {
		s.record(lo)
		return
	}

	mid := lo[branch] + (hi[branch]-lo[branch])/2
	if s.reversed {
		s.descend(lo, hi, branch, mid+1, hi[branch])
		s.descend(lo, hi, branch, lo[branch], mid)
	} else {
		s.descend(lo, hi, branch, lo[branch], mid)
		s.descend(lo, hi, branch, mid+1, hi[branch])
	}
}

// descend 进入限制了某变量域的子节点
func (s *search) descend(lo, hi []int, v, newLo, newHi int) {
	if s.aborted || s.satisfied {
		return
	}
	childLo := append([]int(nil), lo...)
	childHi := append([]int(nil), hi...)
	childLo[v] = newLo
	childHi[v] = newHi
	s.dfs(childLo, childHi)
}

// record 所有变量已固定，记录候选解
func (s *search) record(lo []int) {
	vals := append([]int(nil), lo...)
	if !s.m.hasObj {
		s.incumbent = vals
		s.satisfied = true
		return
	}
	obj := evalExpr(s.m.objective, vals)
	if s.incumbent == nil || obj < s.bestObj {
		s.incumbent = vals
		s.bestObj = obj
	}
}

// propagate 对所有约束做界一致性传播直到不动点
// 返回 false 表示当前节点冲突
func (s *search) propagate(lo, hi []int) bool {
	for changed := true; changed; {
		changed = false
		if s.m.hasObj && s.incumbent != nil {
			// 分支定界：目标值必须严格优于当前最好解
			if !tighten(s.m.objective, -NoLimit, s.bestObj-1, lo, hi, &changed) {
				return false
			}
		}
		for i := range s.m.constraints {
			c := &s.m.constraints[i]
			if !tighten(c.terms, c.lo, c.hi, lo, hi, &changed) {
				return false
			}
		}
	}
	return true
}

// tighten 按单条约束 clo ≤ Σ terms ≤ chi 收紧变量域
func tighten(terms LinearExpr, clo, chi int, lo, hi []int, changed *bool) bool {
	minSum, maxSum := 0, 0
	for _, t := range terms {
		if t.Coef >= 0 {
			minSum += t.Coef * lo[t.Var]
			maxSum += t.Coef * hi[t.Var]
		} else {
			minSum += t.Coef * hi[t.Var]
			maxSum += t.Coef * lo[t.Var]
		}
	}
	if minSum > chi || maxSum < clo {
		return false
	}

	for _, t := range terms {
		a := t.Coef
		if a == 0 {
			continue
		}
		v := int(t.Var)
		var contribMin, contribMax int
		if a > 0 {
			contribMin, contribMax = a*lo[v], a*hi[v]
		} else {
			contribMin, contribMax = a*hi[v], a*lo[v]
		}
		minOther := minSum - contribMin
		maxOther := maxSum - contribMax

		// a*x ≤ chi - minOther
		if chi < NoLimit {
			bound := chi - minOther
			if a > 0 {
				if ub := divFloor(bound, a); ub < hi[v] {
					hi[v] = ub
					*changed = true
				}
			} else {
				if lb := divCeil(bound, a); lb > lo[v] {
					lo[v] = lb
					*changed = true
				}
			}
		}
		// a*x ≥ clo - maxOther
		if clo > -NoLimit {
			bound := clo - maxOther
			if a > 0 {
				if lb := divCeil(bound, a); lb > lo[v] {
					lo[v] = lb
					*changed = true
				}
			} else {
				if ub := divFloor(bound, a); ub < hi[v] {
					hi[v] = ub
					*changed = true
				}
			}
		}
		if lo[v] > hi[v] {
			return false
		}
	}
	return true
}

// evalExpr 按固定取值计算表达式
func evalExpr(e LinearExpr, vals []int) int {
	total := 0
	for _, t := range e {
		total += t.Coef * vals[t.Var]
	}
	return total
}

// divFloor 向下取整除法
func divFloor(a, b int) int {
	if b < 0 {
		a, b = -a, -b
	}
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// divCeil 向上取整除法
func divCeil(a, b int) int {
	if b < 0 {
		a, b = -a, -b
	}
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/zhipai/zhipai/pkg/cpsat"
	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/logger"
	"github.com/zhipai/zhipai/pkg/model"
)

// 模型不可行时对外返回的固定消息
const infeasibleMessage = "No feasible schedule found with current constraints."

// weeklyHoursCap 每名员工的周工时上限（小时）
// 无论排班周期长短都统一生效
const weeklyHoursCap = 40

// Optimal 精确求解策略
// 把排班形式化为布尔决策模型 X[e,d,s]，委托给注入的约束求解后端
type Optimal struct {
	backend        cpsat.Solver
	defaultTimeout time.Duration
	logger         *logger.EngineLogger
}

// NewOptimal 创建精确求解器
// backend 为注入的求解能力，defaultTimeout 为选项未指定超时时的缺省值
func NewOptimal(backend cpsat.Solver, defaultTimeout time.Duration) *Optimal {
	return &Optimal{
		backend:        backend,
		defaultTimeout: defaultTimeout,
		logger:         logger.NewEngineLogger(),
	}
}

// Name 返回策略名称
func (o *Optimal) Name() string {
	return "optimal"
}

// Solve 构建约束模型并求解
func (o *Optimal) Solve(ctx context.Context, schema *model.Schema, opts model.Options) (*model.Schedule, error) {
	days := schema.EffectiveDays()
	employees := schema.Employees
	shifts := schema.ShiftStructure
	nE, nD, nS := len(employees), len(days), len(shifts)

	m := cpsat.NewModel()

	// 决策变量：X[e,d,s] = 员工 e 在第 d 天上班次 s
	x := make([]cpsat.Var, nE*nD*nS)
	idx := func(e, d, s int) int { return (e*nD+d)*nS + s }
	for e := 0; e < nE; e++ {
		for d := 0; d < nD; d++ {
			for s := 0; s < nS; s++ {
				x[idx(e, d, s)] = m.NewBoolVar(fmt.Sprintf("x_%d_%d_%d", e, d, s))
			}
		}
	}

	// 1. 覆盖约束：每个槽位至少 min_staff 人
	// 放松时整条约束直接去掉，没有软惩罚替代
	if !opts.RelaxCoverage {
		for d := 0; d < nD; d++ {
			for s := 0; s < nS; s++ {
				minStaff := shifts[s].MinStaff
				if minStaff <= 0 {
					minStaff = 1
				}
				expr := make(cpsat.LinearExpr, 0, nE)
				for e := 0; e < nE; e++ {
					expr = append(expr, cpsat.Term{Var: x[idx(e, d, s)], Coef: 1})
				}
				m.AddAtLeast(expr, minStaff)
			}
		}
	}

	// 2. 可用性约束：不可用的 (天, 班次) 强制为 0
	if !opts.RelaxAvailability {
		for e := 0; e < nE; e++ {
			for d := 0; d < nD; d++ {
				for s := 0; s < nS; s++ {
					if employees[e].IsUnavailable(days[d], shifts[s].Name) {
						m.AddEquality(cpsat.Sum(x[idx(e, d, s)]), 0)
					}
				}
			}
		}
	}

	// 2b. 角色覆盖：始终生效，不受 relax_coverage 影响
	for d := 0; d < nD; d++ {
		for s := 0; s < nS; s++ {
			for role, minCount := range shifts[s].RequiredRoles {
				expr := make(cpsat.LinearExpr, 0, nE)
				for e := 0; e < nE; e++ {
					if employees[e].HasRole(role) {
						expr = append(expr, cpsat.Term{Var: x[idx(e, d, s)], Coef: 1})
					}
				}
				m.AddAtLeast(expr, minCount)
			}
		}
	}

	// 2c. 连班休息：禁止同一员工连上循环班次序中的相邻槽位
	// 第 d 天的末班与第 d+1 天的首班相邻；最后一天之后不回绕
	if opts.RestConstraint && nS > 1 {
		for e := 0; e < nE; e++ {
			for d := 0; d < nD; d++ {
				for s := 0; s < nS; s++ {
					nextDay := d
					if s == nS-1 {
						nextDay = d + 1
					}
					nextShift := (s + 1) % nS
					if nextDay >= nD {
						continue
					}
					m.AddAtMost(cpsat.Sum(x[idx(e, d, s)], x[idx(e, nextDay, nextShift)]), 1)
				}
			}
		}
	}

	// 2d. 资深约束：min_staff > 2 的班次至少一名资深员工
	if opts.Seniority {
		for d := 0; d < nD; d++ {
			for s := 0; s < nS; s++ {
				if shifts[s].MinStaff <= 2 {
					continue
				}
				expr := make(cpsat.LinearExpr, 0, nE)
				for e := 0; e < nE; e++ {
					if employees[e].IsSenior() {
						expr = append(expr, cpsat.Term{Var: x[idx(e, d, s)], Coef: 1})
					}
				}
				m.AddAtLeast(expr, 1)
			}
		}
	}

	// 3. 工时匹配
	totalScheduleHours := 0
	for _, sh := range shifts {
		totalScheduleHours += sh.Hours
	}
	totalScheduleHours *= nD

	for e := 0; e < nE; e++ {
		target := employees[e].WorkPercent() * totalScheduleHours / 100 // 整数截断
		if target > weeklyHoursCap {
			target = weeklyHoursCap
		}
		hoursExpr := make(cpsat.LinearExpr, 0, nD*nS)
		for d := 0; d < nD; d++ {
			for s := 0; s < nS; s++ {
				hoursExpr = append(hoursExpr, cpsat.Term{Var: x[idx(e, d, s)], Coef: shifts[s].Hours})
			}
		}
		if opts.RelaxWorkPercentage {
			// [0.95t, 1.05t]，基于已截断的整数 target，用精确整数算术表达
			scaled := make(cpsat.LinearExpr, len(hoursExpr))
			for i, t := range hoursExpr {
				scaled[i] = cpsat.Term{Var: t.Var, Coef: 20 * t.Coef}
			}
			m.AddAtLeast(scaled, 19*target)
			m.AddAtMost(scaled, 21*target)
		} else {
			m.AddEquality(hoursExpr, target)
		}
	}

	// 目标：最小化每日总人次的极差（忙闲日差距），不是员工间的班次均衡
	if opts.Fairness {
		weight := opts.FairnessWeight
		if weight <= 0 {
			weight = 1
		}
		maxPossible := nE * nS
		staffDay := make([]cpsat.Var, nD)
		for d := 0; d < nD; d++ {
			staffDay[d] = m.NewIntVar(0, maxPossible, fmt.Sprintf("staff_%d", d))
			expr := make(cpsat.LinearExpr, 0, nE*nS+1)
			for e := 0; e < nE; e++ {
				for s := 0; s < nS; s++ {
					expr = append(expr, cpsat.Term{Var: x[idx(e, d, s)], Coef: 1})
				}
			}
			expr = append(expr, cpsat.Term{Var: staffDay[d], Coef: -1})
			m.AddEquality(expr, 0)
		}

		maxStaff := m.NewIntVar(0, maxPossible, "max_staff")
		minStaff := m.NewIntVar(0, maxPossible, "min_staff")
		for d := 0; d < nD; d++ {
			m.AddAtMost(cpsat.LinearExpr{{Var: staffDay[d], Coef: 1}, {Var: maxStaff, Coef: -1}}, 0)
			m.AddAtLeast(cpsat.LinearExpr{{Var: staffDay[d], Coef: 1}, {Var: minStaff, Coef: -1}}, 0)
		}
		m.Minimize(cpsat.LinearExpr{{Var: maxStaff, Coef: weight}, {Var: minStaff, Coef: -weight}})
	}

	// 求解（超时从取消令牌传入后端）
	solveCtx := ctx
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = o.defaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	sol := o.backend.Solve(solveCtx, m)
	o.logger.SolverStatus(sol.Status.String(), time.Since(start))

	switch sol.Status {
	case cpsat.StatusOptimal, cpsat.StatusFeasible:
		sched := model.NewSchedule(model.MethodOptimal, days)
		for d := 0; d < nD; d++ {
			for s := 0; s < nS; s++ {
				for e := 0; e < nE; e++ {
					if sol.BoolValue(x[idx(e, d, s)]) {
						sched.Append(days[d], model.Slot{Shift: shifts[s].Name, Employee: employees[e].Name})
					}
				}
			}
		}
		// 放松覆盖后无人的槽位直接省略，不补空槽标记（与贪心路径不对称）
		return sched, nil
	case cpsat.StatusInfeasible:
		return nil, errors.NoFeasibleSolution(infeasibleMessage)
	case cpsat.StatusUnknown:
		// 超时与不可行是两类不同的失败
		return nil, errors.SolveTimeout("求解超时，未在期限内找到可行解")
	default:
		return nil, errors.SolverFailure(fmt.Errorf("后端返回状态 %s", sol.Status))
	}
}

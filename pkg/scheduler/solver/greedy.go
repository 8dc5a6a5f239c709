// Package solver 提供排班求解策略
package solver

import (
	"context"
	"math/rand"
	"time"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/logger"
	"github.com/zhipai/zhipai/pkg/model"
)

// Strategy 求解策略接口
type Strategy interface {
	// Solve 在给定 Schema 上生成排班
	// Schema 必须是引擎规范化后的独立副本
	Solve(ctx context.Context, schema *model.Schema, opts model.Options) (*model.Schedule, error)

	// Name 返回策略名称
	Name() string
}

// Greedy 贪心启发式求解器
// 快速近似：不保证覆盖率，也不理解角色、资深、连班约束与 40 小时周上限
type Greedy struct {
	logger *logger.EngineLogger
}

// NewGreedy 创建贪心求解器
func NewGreedy() *Greedy {
	return &Greedy{logger: logger.NewEngineLogger()}
}

// Name 返回策略名称
func (g *Greedy) Name() string {
	return "greedy"
}

// task 单个待分配槽位任务
type task struct {
	day      string
	shift    string
	hours    int
	minStaff int
}

// Solve 单遍贪心分配
// 永不失败：无候选员工时退化为空槽，始终返回完整结构
func (g *Greedy) Solve(ctx context.Context, schema *model.Schema, opts model.Options) (*model.Schedule, error) {
	start := time.Now()
	days := schema.EffectiveDays()

	// 排班周期的总需求工时
	totalRequiredHours := 0
	for range days {
		for _, sh := range schema.ShiftStructure {
			totalRequiredHours += sh.Hours
		}
	}

	// 每名员工的目标工时与累计工时
	targetHours := make(map[string]float64, len(schema.Employees))
	assignedHours := make(map[string]int, len(schema.Employees))
	for i := range schema.Employees {
		e := &schema.Employees[i]
		targetHours[e.Name] = float64(e.WorkPercent()) / 100 * float64(totalRequiredHours)
	}

	// 枚举所有 (天, 班次) 任务并乱序，避免系统性偏向靠前的班次
	tasks := make([]task, 0, len(days)*len(schema.ShiftStructure))
	for _, day := range days {
		for _, sh := range schema.ShiftStructure {
			minStaff := sh.MinStaff
			if minStaff <= 0 {
				minStaff = 1
			}
			tasks = append(tasks, task{day: day, shift: sh.Name, hours: sh.Hours, minStaff: minStaff})
		}
	}
	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(tasks), func(i, j int) {
		tasks[i], tasks[j] = tasks[j], tasks[i]
	})

	sched := model.NewSchedule(model.MethodHeuristic, days)

	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return nil, errors.SolveTimeout("排班中断，调用被取消或超时").WithCause(err)
		}

		// 候选池：当天当班可用且尚未到达目标工时的员工（保持名册顺序）
		pool := make([]string, 0, len(schema.Employees))
		for i := range schema.Employees {
			e := &schema.Employees[i]
			if e.IsUnavailable(t.day, t.shift) {
				continue
			}
			if float64(assignedHours[e.Name]) < targetHours[e.Name] {
				pool = append(pool, e.Name)
			}
		}

		if len(pool) == 0 {
			// 空槽是正常结果，不是失败
			g.logger.UnstaffedSlot(t.day, t.shift)
			sched.Append(t.day, model.Slot{Shift: t.shift, Employee: model.Unassigned})
			continue
		}

		for n := 0; n < t.minStaff; n++ {
			if len(pool) == 0 {
				sched.Append(t.day, model.Slot{Shift: t.shift, Employee: model.Unassigned})
				break
			}
			// 取累计工时最少的候选，平局按池内顺序
			chosen := 0
			for j := 1; j < len(pool); j++ {
				if assignedHours[pool[j]] < assignedHours[pool[chosen]] {
					chosen = j
				}
			}
			name := pool[chosen]
			sched.Append(t.day, model.Slot{Shift: t.shift, Employee: name})
			assignedHours[name] += t.hours
			// 只从本槽位的池中移除，同一天的其他班次仍然可选
			pool = append(pool[:chosen], pool[chosen+1:]...)
		}
	}

	g.logger.BuildComplete(g.Name(), sched.TotalSlots(), time.Since(start))
	return sched, nil
}

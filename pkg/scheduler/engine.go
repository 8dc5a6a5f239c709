package scheduler

import (
	"context"
	"time"

	"github.com/zhipai/zhipai/pkg/cpsat"
	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/logger"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/solver"
	"github.com/zhipai/zhipai/pkg/validator"
)

// Engine 统一调度器
// 每次调用同步、无状态，作用于一个独立的 Schema 快照；
// 只要调用方各自持有独立的 Schema，并发调用之间不共享任何状态
type Engine struct {
	greedy  *solver.Greedy
	optimal *solver.Optimal
	logger  *logger.EngineLogger
}

// New 创建调度引擎
// backend 为注入的约束求解后端，defaultTimeout 为最优求解的缺省超时
func New(backend cpsat.Solver, defaultTimeout time.Duration) *Engine {
	return &Engine{
		greedy:  solver.NewGreedy(),
		optimal: solver.NewOptimal(backend, defaultTimeout),
		logger:  logger.NewEngineLogger(),
	}
}

// Validate 对输入做轻量完整性检查，返回建议性警告列表
// 引擎自身不会因为警告拒绝排班，是否继续由调用方决定
func (en *Engine) Validate(schema *model.Schema) []string {
	return validator.Validate(schema)
}

// BuildSchedule 生成排班
// 先应用员工过滤（严格大于阈值），再按方法选择策略；
// 公平/连班/资深/放松类选项只有最优路径使用，贪心路径静默忽略。
// 调用方传入的 schema 绝不会被修改：过滤与缺省值补全都发生在深拷贝副本上
func (en *Engine) BuildSchedule(ctx context.Context, schema *model.Schema, opts model.Options) (*model.Schedule, error) {
	method, ok := opts.Method.Canonical()
	if !ok {
		// 未知方法：不调用任何策略
		return nil, errors.UnknownMethod(string(opts.Method))
	}

	filtered := FilterEmployees(schema, opts.WorkPercentageThreshold, opts.ExperienceThreshold)
	filtered.Normalize()

	en.logger.StartBuild(string(method), len(filtered.Employees), len(filtered.Days), len(filtered.ShiftStructure))

	switch method {
	case model.MethodHeuristic:
		sched, err := en.greedy.Solve(ctx, filtered, opts)
		if err != nil {
			en.logger.BuildFailed(string(method), err)
			return nil, err
		}
		return sched, nil
	default:
		sched, err := en.optimal.Solve(ctx, filtered, opts)
		if err != nil {
			en.logger.BuildFailed(string(method), err)
			return nil, err
		}
		return sched, nil
	}
}

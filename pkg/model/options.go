package model

import "time"

// Method 求解方法
type Method string

const (
	MethodOptimal   Method = "optimal"   // 精确求解（约束规划）
	MethodHeuristic Method = "heuristic" // 快速贪心启发式

	// 旧接口的别名
	MethodCP     Method = "cp"
	MethodGreedy Method = "greedy"
)

// Canonical 返回规范化的方法名；未知方法时 ok 为 false
func (m Method) Canonical() (Method, bool) {
	switch m {
	case "", MethodOptimal, MethodCP:
		return MethodOptimal, true
	case MethodHeuristic, MethodGreedy:
		return MethodHeuristic, true
	default:
		return m, false
	}
}

// Options 单次排班调用的选项
// 按值传递且调用间互不共享，重复调用不会泄漏任何状态
type Options struct {
	Method         Method `json:"method,omitempty"`
	Fairness       bool   `json:"fairness"`                  // 最小化每日人数极差（仅最优路径）
	FairnessWeight int    `json:"fairness_weight,omitempty"` // 公平目标权重（正整数）
	RestConstraint bool   `json:"rest_constraint"`           // 禁止相邻班次连班（仅最优路径）
	Seniority      bool   `json:"seniority,omitempty"`       // 大班次要求至少一名资深员工（仅最优路径）

	// 员工预过滤阈值（严格大于），两种策略共用
	WorkPercentageThreshold *int `json:"work_percentage_threshold,omitempty"`
	ExperienceThreshold     *int `json:"experience_threshold,omitempty"`

	// 硬约束放松开关（仅最优路径）
	RelaxWorkPercentage bool `json:"relax_work_percentage,omitempty"`
	RelaxCoverage       bool `json:"relax_coverage,omitempty"`
	RelaxAvailability   bool `json:"relax_availability,omitempty"`

	// Seed 贪心乱序的随机种子，固定后结果可复现
	Seed *int64 `json:"seed,omitempty"`

	// Timeout 最优求解超时，零值使用引擎配置的缺省值
	Timeout time.Duration `json:"-"`
}

// DefaultOptions 返回缺省选项
func DefaultOptions() Options {
	return Options{
		Method:         MethodOptimal,
		Fairness:       true,
		FairnessWeight: 1,
		RestConstraint: true,
	}
}

// Package stats 提供排班结果的统计分析
package stats

import (
	"math"
	"sort"

	"github.com/zhipai/zhipai/pkg/model"
)

// EmployeeStat 单个员工的负载统计
type EmployeeStat struct {
	Name       string  `json:"name"`
	TotalHours int     `json:"total_hours"`
	ShiftCount int     `json:"shift_count"`
	Deviation  float64 `json:"deviation"` // 与人均工时的偏差百分比
}

// FairnessMetrics 公平性指标
type FairnessMetrics struct {
	// 每日人数维度（引擎公平目标优化的正是这个极差）
	DailySpread    int            `json:"daily_spread"`
	HeadcountByDay map[string]int `json:"headcount_by_day"`

	// 员工工时维度
	AvgHoursPerEmployee float64        `json:"avg_hours_per_employee"`
	MaxHours            int            `json:"max_hours"`
	MinHours            int            `json:"min_hours"`
	HoursRange          int            `json:"hours_range"`
	HoursStdDev         float64        `json:"hours_std_dev"`
	HoursGini           float64        `json:"hours_gini"` // 0=完全公平, 1=完全不公平
	EmployeeStats       []EmployeeStat `json:"employee_stats"`

	// 综合评分 (0-100)
	Score float64 `json:"score"`
}

// AnalyzeFairness 分析一份排班结果的公平性
// 纯函数：只读 schedule 与班次定义
func AnalyzeFairness(sched *model.Schedule, shifts []model.ShiftDefinition) *FairnessMetrics {
	m := &FairnessMetrics{
		HeadcountByDay: sched.HeadcountByDay(),
	}

	// 每日人数极差
	first := true
	minCount, maxCount := 0, 0
	for _, day := range sched.Days {
		n := m.HeadcountByDay[day]
		if first {
			minCount, maxCount = n, n
			first = false
			continue
		}
		if n < minCount {
			minCount = n
		}
		if n > maxCount {
			maxCount = n
		}
	}
	if !first {
		m.DailySpread = maxCount - minCount
	}

	// 员工工时统计（只统计有分配的员工）
	hours := sched.HoursByEmployee(shifts)
	counts := make(map[string]int, len(hours))
	for _, slots := range sched.Assignments {
		for _, slot := range slots {
			if slot.Staffed() {
				counts[slot.Employee]++
			}
		}
	}
	if len(hours) == 0 {
		m.Score = 100
		return m
	}

	names := make([]string, 0, len(hours))
	for name := range hours {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	m.MinHours = math.MaxInt
	for _, name := range names {
		h := hours[name]
		total += h
		if h > m.MaxHours {
			m.MaxHours = h
		}
		if h < m.MinHours {
			m.MinHours = h
		}
	}
	m.AvgHoursPerEmployee = float64(total) / float64(len(names))
	m.HoursRange = m.MaxHours - m.MinHours

	variance := 0.0
	for _, name := range names {
		d := float64(hours[name]) - m.AvgHoursPerEmployee
		variance += d * d
	}
	variance /= float64(len(names))
	m.HoursStdDev = math.Sqrt(variance)
	m.HoursGini = gini(names, hours)

	for _, name := range names {
		stat := EmployeeStat{
			Name:       name,
			TotalHours: hours[name],
			ShiftCount: counts[name],
		}
		if m.AvgHoursPerEmployee > 0 {
			stat.Deviation = (float64(hours[name]) - m.AvgHoursPerEmployee) / m.AvgHoursPerEmployee * 100
		}
		m.EmployeeStats = append(m.EmployeeStats, stat)
	}

	m.Score = 100 * (1 - m.HoursGini)
	if m.Score < 0 {
		m.Score = 0
	}
	return m
}

// gini 计算工时分布的基尼系数
func gini(names []string, hours map[string]int) float64 {
	n := len(names)
	if n == 0 {
		return 0
	}
	values := make([]float64, n)
	for i, name := range names {
		values[i] = float64(hours[name])
	}
	sort.Float64s(values)

	var cum, total float64
	for i, v := range values {
		cum += v * float64(i+1)
		total += v
	}
	if total == 0 {
		return 0
	}
	return (2*cum - float64(n+1)*total) / (float64(n) * total)
}

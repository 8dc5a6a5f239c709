// Package scheduler 提供统一的排班调度入口
package scheduler

import (
	"github.com/zhipai/zhipai/pkg/model"
)

// FilterEmployees 按可选阈值（严格大于）筛选员工
// 无论是否给定阈值都返回整个 Schema 的深拷贝，
// 这样后续在副本上的缺省值补全不可能污染调用方的原始数据
func FilterEmployees(schema *model.Schema, wpThreshold, expThreshold *int) *model.Schema {
	clone := schema.Clone()
	if wpThreshold == nil && expThreshold == nil {
		return clone
	}

	kept := make([]model.Employee, 0, len(clone.Employees))
	for i := range clone.Employees {
		e := clone.Employees[i]
		if wpThreshold != nil && e.WorkPercent() <= *wpThreshold {
			continue
		}
		if expThreshold != nil && e.ExperienceYears <= *expThreshold {
			continue
		}
		kept = append(kept, e)
	}
	clone.Employees = kept
	return clone
}

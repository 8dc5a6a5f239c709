package stats

import (
	"github.com/zhipai/zhipai/pkg/model"
)

// SlotRef 槽位引用
type SlotRef struct {
	Day   string `json:"day"`
	Shift string `json:"shift"`
}

// ShortSlot 人数未达 min_staff 的槽位
type ShortSlot struct {
	Day      string `json:"day"`
	Shift    string `json:"shift"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
}

// RoleGap 角色覆盖缺口
type RoleGap struct {
	Day      string `json:"day"`
	Shift    string `json:"shift"`
	Role     string `json:"role"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
}

// CoverageMetrics 覆盖率指标
type CoverageMetrics struct {
	TotalSlots     int         `json:"total_slots"`   // (天 × 班次) 槽位总数
	StaffedSlots   int         `json:"staffed_slots"` // 至少有一人的槽位数
	FillRate       float64     `json:"fill_rate"`     // 百分比
	UnstaffedSlots []SlotRef   `json:"unstaffed_slots,omitempty"`
	ShortSlots     []ShortSlot `json:"short_slots,omitempty"`
	RoleGaps       []RoleGap   `json:"role_gaps,omitempty"`
}

// AnalyzeCoverage 对照班次定义分析一份排班结果的覆盖情况
// 纯函数：只读输入
func AnalyzeCoverage(sched *model.Schedule, shifts []model.ShiftDefinition, employees []model.Employee) *CoverageMetrics {
	m := &CoverageMetrics{}

	byName := make(map[string]*model.Employee, len(employees))
	for i := range employees {
		byName[employees[i].Name] = &employees[i]
	}

	// 每个 (天, 班次) 的已分配员工
	assigned := make(map[SlotRef][]string)
	for _, day := range sched.Days {
		for _, slot := range sched.SlotsFor(day) {
			ref := SlotRef{Day: day, Shift: slot.Shift}
			if slot.Staffed() {
				assigned[ref] = append(assigned[ref], slot.Employee)
			} else if _, seen := assigned[ref]; !seen {
				assigned[ref] = nil
			}
		}
	}

	for _, day := range sched.Days {
		for _, sh := range shifts {
			m.TotalSlots++
			ref := SlotRef{Day: day, Shift: sh.Name}
			staff := assigned[ref]
			if len(staff) == 0 {
				m.UnstaffedSlots = append(m.UnstaffedSlots, ref)
			} else {
				m.StaffedSlots++
			}

			required := sh.MinStaff
			if required <= 0 {
				required = 1
			}
			if len(staff) < required {
				m.ShortSlots = append(m.ShortSlots, ShortSlot{
					Day:      day,
					Shift:    sh.Name,
					Required: required,
					Assigned: len(staff),
				})
			}

			for role, minCount := range sh.RequiredRoles {
				have := 0
				for _, name := range staff {
					if emp := byName[name]; emp != nil && emp.HasRole(role) {
						have++
					}
				}
				if have < minCount {
					m.RoleGaps = append(m.RoleGaps, RoleGap{
						Day:      day,
						Shift:    sh.Name,
						Role:     role,
						Required: minCount,
						Assigned: have,
					})
				}
			}
		}
	}

	if m.TotalSlots > 0 {
		m.FillRate = float64(m.StaffedSlots) / float64(m.TotalSlots) * 100
	}
	return m
}

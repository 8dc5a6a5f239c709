package model

// Unassigned 空槽标记：该班次槽位没有可分配的员工
const Unassigned = ""

// Slot 单个班次槽位的分配
type Slot struct {
	Shift    string `json:"shift"`
	Employee string `json:"employee"` // Unassigned 表示空槽
}

// Staffed 槽位是否已分配员工
func (s Slot) Staffed() bool {
	return s.Employee != Unassigned
}

// Schedule 排班结果：天 -> 有序槽位列表
type Schedule struct {
	ID          string            `json:"schedule_id,omitempty"`
	Method      Method            `json:"method"`
	Days        []string          `json:"days"` // 保持请求中的天序
	Assignments map[string][]Slot `json:"assignments"`
}

// NewSchedule 创建空排班结果
func NewSchedule(method Method, days []string) *Schedule {
	d := make([]string, len(days))
	copy(d, days)
	return &Schedule{
		Method:      method,
		Days:        d,
		Assignments: make(map[string][]Slot, len(days)),
	}
}

// Append 追加一个槽位分配
func (s *Schedule) Append(day string, slot Slot) {
	s.Assignments[day] = append(s.Assignments[day], slot)
}

// SlotsFor 返回某天的槽位列表（保持追加顺序）
func (s *Schedule) SlotsFor(day string) []Slot {
	return s.Assignments[day]
}

// TotalSlots 槽位总数（含空槽）
func (s *Schedule) TotalSlots() int {
	n := 0
	for _, slots := range s.Assignments {
		n += len(slots)
	}
	return n
}

// HoursByEmployee 按员工汇总已分配小时数
func (s *Schedule) HoursByEmployee(shifts []ShiftDefinition) map[string]int {
	hoursPerShift := make(map[string]int, len(shifts))
	for _, sh := range shifts {
		hoursPerShift[sh.Name] = sh.Hours
	}
	totals := make(map[string]int)
	for _, slots := range s.Assignments {
		for _, slot := range slots {
			if slot.Staffed() {
				totals[slot.Employee] += hoursPerShift[slot.Shift]
			}
		}
	}
	return totals
}

// HeadcountByDay 按天统计分配人次（空槽不计）
func (s *Schedule) HeadcountByDay() map[string]int {
	counts := make(map[string]int, len(s.Days))
	for _, day := range s.Days {
		n := 0
		for _, slot := range s.Assignments[day] {
			if slot.Staffed() {
				n++
			}
		}
		counts[day] = n
	}
	return counts
}

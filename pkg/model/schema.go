// Package model 定义排班决策引擎的核心数据模型
package model

// EmploymentType 雇佣类型
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time" // 全职
	EmploymentPartTime EmploymentType = "part-time" // 兼职
)

// DefaultDays 返回缺省排班周期（周一到周日，调用方独立持有副本）
func DefaultDays() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
}

// ShiftDefinition 班次定义
type ShiftDefinition struct {
	Name          string         `json:"name"`                     // 班次名（同一 shift_structure 内唯一）
	Hours         int            `json:"hours"`                    // 班次时长（小时，正整数）
	MinStaff      int            `json:"min_staff,omitempty"`      // 最低人数，缺省补 1
	RequiredRoles map[string]int `json:"required_roles,omitempty"` // 角色 -> 最低人数
}

// Availability 员工可用性
type Availability struct {
	UnavailableDays  []string `json:"unavailable_days,omitempty"`  // 不可用的天
	UnavailableTimes []string `json:"unavailable_times,omitempty"` // 不可用的班次名
	PreferredShifts  []string `json:"preferred_shifts,omitempty"`  // 偏好班次，仅作记录，两种策略均不使用
}

// Employee 员工
type Employee struct {
	Name            string         `json:"name"` // 作为唯一标识
	EmploymentType  EmploymentType `json:"employment_type"`
	WorkPercentage  *int           `json:"work_percentage,omitempty"` // 0-100，缺省视为 100
	RolesPrimary    []string       `json:"roles_primary,omitempty"`
	Senior          bool           `json:"senior,omitempty"`
	ExperienceYears int            `json:"experience_years,omitempty"`
	Availability    *Availability  `json:"availability,omitempty"`
}

// WorkPercent 返回工作比例，未填写时取缺省值 100
func (e *Employee) WorkPercent() int {
	if e.WorkPercentage == nil {
		return 100
	}
	return *e.WorkPercentage
}

// IsSenior 是否资深：senior 标记或经验年数 >= 3
func (e *Employee) IsSenior() bool {
	return e.Senior || e.ExperienceYears >= 3
}

// HasRole 检查员工主要角色是否包含某角色
func (e *Employee) HasRole(role string) bool {
	for _, r := range e.RolesPrimary {
		if r == role {
			return true
		}
	}
	return false
}

// IsUnavailable 员工在某天某班次是否不可用
func (e *Employee) IsUnavailable(day, shiftName string) bool {
	if e.Availability == nil {
		return false
	}
	for _, d := range e.Availability.UnavailableDays {
		if d == day {
			return true
		}
	}
	for _, s := range e.Availability.UnavailableTimes {
		if s == shiftName {
			return true
		}
	}
	return false
}

// DayHours 单日营业时间
type DayHours struct {
	Open  string `json:"open"`  // HH:MM
	Close string `json:"close"` // HH:MM
}

// OpeningHours 营业时间（天 -> 开关门时间），仅用于校验与展示，不参与约束
type OpeningHours map[string]DayHours

// Schema 排班输入
type Schema struct {
	CompanyName    string            `json:"company_name"`
	OpeningHours   OpeningHours      `json:"opening_hours,omitempty"`
	ShiftStructure []ShiftDefinition `json:"shift_structure"`
	Employees      []Employee        `json:"employees"`
	Days           []string          `json:"days,omitempty"` // 有序，缺省为完整一周
}

// EffectiveDays 返回排班周期；未填写时返回缺省一周（独立副本）
func (s *Schema) EffectiveDays() []string {
	if len(s.Days) == 0 {
		return DefaultDays()
	}
	days := make([]string, len(s.Days))
	copy(days, s.Days)
	return days
}

// ShiftByName 按班次名查找班次定义
func (s *Schema) ShiftByName(name string) *ShiftDefinition {
	for i := range s.ShiftStructure {
		if s.ShiftStructure[i].Name == name {
			return &s.ShiftStructure[i]
		}
	}
	return nil
}

// Clone 深拷贝整个 Schema
// 引擎内部的缺省值补全只允许发生在副本上，重复调用不得污染调用方的原始数据
func (s *Schema) Clone() *Schema {
	clone := &Schema{
		CompanyName: s.CompanyName,
	}
	if s.OpeningHours != nil {
		clone.OpeningHours = make(OpeningHours, len(s.OpeningHours))
		for day, h := range s.OpeningHours {
			clone.OpeningHours[day] = h
		}
	}
	if s.ShiftStructure != nil {
		clone.ShiftStructure = make([]ShiftDefinition, len(s.ShiftStructure))
		for i, sh := range s.ShiftStructure {
			clone.ShiftStructure[i] = sh
			if sh.RequiredRoles != nil {
				roles := make(map[string]int, len(sh.RequiredRoles))
				for role, n := range sh.RequiredRoles {
					roles[role] = n
				}
				clone.ShiftStructure[i].RequiredRoles = roles
			}
		}
	}
	if s.Employees != nil {
		clone.Employees = make([]Employee, len(s.Employees))
		for i := range s.Employees {
			clone.Employees[i] = cloneEmployee(&s.Employees[i])
		}
	}
	if s.Days != nil {
		clone.Days = make([]string, len(s.Days))
		copy(clone.Days, s.Days)
	}
	return clone
}

// cloneEmployee 深拷贝单个员工
func cloneEmployee(e *Employee) Employee {
	c := *e
	if e.WorkPercentage != nil {
		wp := *e.WorkPercentage
		c.WorkPercentage = &wp
	}
	if e.RolesPrimary != nil {
		c.RolesPrimary = make([]string, len(e.RolesPrimary))
		copy(c.RolesPrimary, e.RolesPrimary)
	}
	if e.Availability != nil {
		a := Availability{}
		if e.Availability.UnavailableDays != nil {
			a.UnavailableDays = make([]string, len(e.Availability.UnavailableDays))
			copy(a.UnavailableDays, e.Availability.UnavailableDays)
		}
		if e.Availability.UnavailableTimes != nil {
			a.UnavailableTimes = make([]string, len(e.Availability.UnavailableTimes))
			copy(a.UnavailableTimes, e.Availability.UnavailableTimes)
		}
		if e.Availability.PreferredShifts != nil {
			a.PreferredShifts = make([]string, len(e.Availability.PreferredShifts))
			copy(a.PreferredShifts, e.Availability.PreferredShifts)
		}
		c.Availability = &a
	}
	return c
}

// Normalize 补全缺省值：min_staff 缺省为 1，days 缺省为完整一周
// 只允许在 Clone 出来的副本上调用
func (s *Schema) Normalize() {
	for i := range s.ShiftStructure {
		if s.ShiftStructure[i].MinStaff <= 0 {
			s.ShiftStructure[i].MinStaff = 1
		}
	}
	if len(s.Days) == 0 {
		s.Days = DefaultDays()
	}
}

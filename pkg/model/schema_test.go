package model

import (
	"testing"
)

func intPtr(v int) *int { return &v }

func TestEmployee_WorkPercent(t *testing.T) {
	tests := []struct {
		name string
		emp  Employee
		want int
	}{
		{name: "未填写，缺省100", emp: Employee{Name: "A"}, want: 100},
		{name: "显式填写", emp: Employee{Name: "B", WorkPercentage: intPtr(60)}, want: 60},
		{name: "显式填写0，不回退缺省", emp: Employee{Name: "C", WorkPercentage: intPtr(0)}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.emp.WorkPercent(); got != tt.want {
				t.Errorf("WorkPercent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEmployee_IsSenior(t *testing.T) {
	tests := []struct {
		name string
		emp  Employee
		want bool
	}{
		{name: "senior标记", emp: Employee{Senior: true}, want: true},
		{name: "经验满3年", emp: Employee{ExperienceYears: 3}, want: true},
		{name: "经验不足", emp: Employee{ExperienceYears: 2}, want: false},
		{name: "两者皆无", emp: Employee{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.emp.IsSenior(); got != tt.want {
				t.Errorf("IsSenior() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmployee_IsUnavailable(t *testing.T) {
	emp := Employee{
		Name: "Alice",
		Availability: &Availability{
			UnavailableDays:  []string{"Monday"},
			UnavailableTimes: []string{"Night"},
		},
	}

	tests := []struct {
		name  string
		day   string
		shift string
		want  bool
	}{
		{name: "不可用的天", day: "Monday", shift: "Morning", want: true},
		{name: "不可用的班次", day: "Tuesday", shift: "Night", want: true},
		{name: "可用组合", day: "Tuesday", shift: "Morning", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emp.IsUnavailable(tt.day, tt.shift); got != tt.want {
				t.Errorf("IsUnavailable(%s, %s) = %v, want %v", tt.day, tt.shift, got, tt.want)
			}
		})
	}

	t.Run("无可用性信息视为全可用", func(t *testing.T) {
		e := Employee{Name: "Bob"}
		if e.IsUnavailable("Monday", "Night") {
			t.Error("无 Availability 时应全可用")
		}
	})
}

func TestSchema_Clone(t *testing.T) {
	wp := 80
	src := &Schema{
		CompanyName: "Cafe",
		OpeningHours: OpeningHours{
			"Monday": {Open: "08:00", Close: "22:00"},
		},
		ShiftStructure: []ShiftDefinition{
			{Name: "Morning", Hours: 6, MinStaff: 2, RequiredRoles: map[string]int{"barista": 1}},
		},
		Employees: []Employee{
			{
				Name:           "Alice",
				EmploymentType: EmploymentFullTime,
				WorkPercentage: &wp,
				RolesPrimary:   []string{"barista"},
				Availability:   &Availability{UnavailableDays: []string{"Sunday"}},
			},
		},
		Days: []string{"Monday", "Tuesday"},
	}

	clone := src.Clone()

	// 修改副本的所有引用字段，原件不得受影响
	clone.ShiftStructure[0].RequiredRoles["barista"] = 99
	clone.ShiftStructure[0].MinStaff = 99
	*clone.Employees[0].WorkPercentage = 10
	clone.Employees[0].RolesPrimary[0] = "changed"
	clone.Employees[0].Availability.UnavailableDays[0] = "changed"
	clone.Days[0] = "changed"
	clone.OpeningHours["Monday"] = DayHours{Open: "00:00", Close: "00:00"}

	if src.ShiftStructure[0].RequiredRoles["barista"] != 1 {
		t.Error("Clone 未深拷贝 RequiredRoles")
	}
	if src.ShiftStructure[0].MinStaff != 2 {
		t.Error("Clone 未隔离 ShiftStructure")
	}
	if *src.Employees[0].WorkPercentage != 80 {
		t.Error("Clone 未深拷贝 WorkPercentage")
	}
	if src.Employees[0].RolesPrimary[0] != "barista" {
		t.Error("Clone 未深拷贝 RolesPrimary")
	}
	if src.Employees[0].Availability.UnavailableDays[0] != "Sunday" {
		t.Error("Clone 未深拷贝 Availability")
	}
	if src.Days[0] != "Monday" {
		t.Error("Clone 未深拷贝 Days")
	}
	if src.OpeningHours["Monday"].Open != "08:00" {
		t.Error("Clone 未深拷贝 OpeningHours")
	}
}

func TestSchema_Normalize(t *testing.T) {
	s := &Schema{
		ShiftStructure: []ShiftDefinition{
			{Name: "Morning", Hours: 6},
			{Name: "Evening", Hours: 6, MinStaff: 3},
		},
	}
	s.Normalize()

	if s.ShiftStructure[0].MinStaff != 1 {
		t.Errorf("缺省 MinStaff = %d, want 1", s.ShiftStructure[0].MinStaff)
	}
	if s.ShiftStructure[1].MinStaff != 3 {
		t.Errorf("显式 MinStaff 被改写: %d", s.ShiftStructure[1].MinStaff)
	}
	if len(s.Days) != 7 || s.Days[0] != "Monday" || s.Days[6] != "Sunday" {
		t.Errorf("缺省 Days 应为周一到周日: %v", s.Days)
	}
}

func TestSchema_EffectiveDays(t *testing.T) {
	s := &Schema{}
	days := s.EffectiveDays()
	if len(days) != 7 {
		t.Fatalf("缺省天数 = %d, want 7", len(days))
	}
	days[0] = "changed"
	if len(s.Days) != 0 {
		t.Error("EffectiveDays 不应写回 Schema")
	}

	s2 := &Schema{Days: []string{"Monday"}}
	got := s2.EffectiveDays()
	got[0] = "changed"
	if s2.Days[0] != "Monday" {
		t.Error("EffectiveDays 应返回独立副本")
	}
}

func TestMethod_Canonical(t *testing.T) {
	tests := []struct {
		name   string
		in     Method
		want   Method
		wantOK bool
	}{
		{name: "空值取缺省", in: "", want: MethodOptimal, wantOK: true},
		{name: "optimal", in: MethodOptimal, want: MethodOptimal, wantOK: true},
		{name: "cp别名", in: MethodCP, want: MethodOptimal, wantOK: true},
		{name: "heuristic", in: MethodHeuristic, want: MethodHeuristic, wantOK: true},
		{name: "greedy别名", in: MethodGreedy, want: MethodHeuristic, wantOK: true},
		{name: "未知方法", in: "quantum", want: "quantum", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.Canonical()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Canonical() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSchedule_HoursByEmployee(t *testing.T) {
	shifts := []ShiftDefinition{
		{Name: "Morning", Hours: 6},
		{Name: "Evening", Hours: 4},
	}
	sched := NewSchedule(MethodHeuristic, []string{"Monday", "Tuesday"})
	sched.Append("Monday", Slot{Shift: "Morning", Employee: "Alice"})
	sched.Append("Monday", Slot{Shift: "Evening", Employee: "Bob"})
	sched.Append("Tuesday", Slot{Shift: "Morning", Employee: "Alice"})
	sched.Append("Tuesday", Slot{Shift: "Evening", Employee: Unassigned})

	hours := sched.HoursByEmployee(shifts)
	if hours["Alice"] != 12 {
		t.Errorf("Alice 工时 = %d, want 12", hours["Alice"])
	}
	if hours["Bob"] != 4 {
		t.Errorf("Bob 工时 = %d, want 4", hours["Bob"])
	}
	if _, ok := hours[Unassigned]; ok {
		t.Error("空槽不应计入工时")
	}

	counts := sched.HeadcountByDay()
	if counts["Monday"] != 2 || counts["Tuesday"] != 1 {
		t.Errorf("HeadcountByDay = %v", counts)
	}
}

package solver

import (
	"context"
	"testing"
	"time"

	"github.com/zhipai/zhipai/pkg/cpsat"
	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
)

func newTestOptimal() *Optimal {
	return NewOptimal(cpsat.NewSolver(), 10*time.Second)
}

func TestOptimal_FullCoverage(t *testing.T) {
	// 单日单班，min_staff=2，两名全职员工：两人都必须上班
	schema := &model.Schema{
		CompanyName: "Cafe",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Day", Hours: 8, MinStaff: 2},
		},
		Employees: []model.Employee{
			{Name: "Alice", EmploymentType: model.EmploymentFullTime},
			{Name: "Bob", EmploymentType: model.EmploymentFullTime},
		},
		Days: []string{"Monday"},
	}
	opts := model.DefaultOptions()
	opts.RelaxWorkPercentage = true

	sched, err := newTestOptimal().Solve(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	slots := sched.SlotsFor("Monday")
	if len(slots) != 2 {
		t.Fatalf("分配数 = %d, want 2", len(slots))
	}
	seen := map[string]bool{}
	for _, slot := range slots {
		seen[slot.Employee] = true
	}
	if !seen["Alice"] || !seen["Bob"] {
		t.Errorf("两名员工都应上班: %v", slots)
	}
	if sched.Method != model.MethodOptimal {
		t.Errorf("Method = %s, want optimal", sched.Method)
	}
}

func TestOptimal_InfeasibleNoEmployees(t *testing.T) {
	schema := &model.Schema{
		CompanyName: "Cafe",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Day", Hours: 8, MinStaff: 1},
		},
		Days: []string{"Monday"},
	}

	_, err := newTestOptimal().Solve(context.Background(), schema, model.DefaultOptions())
	if err == nil {
		t.Fatal("无员工应不可行")
	}
	if errors.GetCode(err) != errors.CodeNoFeasibleSolution {
		t.Errorf("错误码 = %s, want NO_FEASIBLE_SOLUTION", errors.GetCode(err))
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Message != "No feasible schedule found with current constraints." {
		t.Errorf("错误消息 = %v", err)
	}
}

func TestOptimal_RestConstraint(t *testing.T) {
	// 单日两个相邻班次，单名员工的目标工时恰好要求两班全上：
	// 连班约束开启时矛盾，关闭后可行
	schema := &model.Schema{
		CompanyName: "Cafe",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Morning", Hours: 4, MinStaff: 1},
			{Name: "Evening", Hours: 4, MinStaff: 1},
		},
		Employees: []model.Employee{
			{Name: "Alice", EmploymentType: model.EmploymentFullTime},
		},
		Days: []string{"Monday"},
	}

	opts := model.DefaultOptions()
	opts.RestConstraint = true
	if _, err := newTestOptimal().Solve(context.Background(), schema, opts); err == nil {
		t.Error("连班约束开启时应不可行")
	}

	opts.RestConstraint = false
	sched, err := newTestOptimal().Solve(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("关闭连班约束后 Solve() error = %v", err)
	}
	if got := len(sched.SlotsFor("Monday")); got != 2 {
		t.Errorf("分配数 = %d, want 2", got)
	}
}

func TestOptimal_WeeklyHoursCap(t *testing.T) {
	// 7 天 × 8 小时 = 56 小时总需求，目标工时被截到 40 小时
	schema := &model.Schema{
		CompanyName: "Factory",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Day", Hours: 8, MinStaff: 1},
		},
		Employees: []model.Employee{
			{Name: "Alice", EmploymentType: model.EmploymentFullTime},
			{Name: "Bob", EmploymentType: model.EmploymentFullTime},
		},
		Days: model.DefaultDays(),
	}

	sched, err := newTestOptimal().Solve(context.Background(), schema, model.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	hours := sched.HoursByEmployee(schema.ShiftStructure)
	if hours["Alice"] != 40 || hours["Bob"] != 40 {
		t.Errorf("工时 = %v, want 每人 40", hours)
	}
	// 覆盖：每天至少 1 人
	for day, n := range sched.HeadcountByDay() {
		if n < 1 {
			t.Errorf("天 %s 无人当班", day)
		}
	}
}

func TestOptimal_ExactHoursTarget(t *testing.T) {
	// 兼职 50%：目标 = 50 * 16 / 100 = 8 小时（整数截断）
	half := 50
	schema := &model.Schema{
		CompanyName: "Cafe",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Day", Hours: 8, MinStaff: 1},
		},
		Employees: []model.Employee{
			{Name: "Alice", EmploymentType: model.EmploymentFullTime},
			{Name: "Carol", EmploymentType: model.EmploymentPartTime, WorkPercentage: &half},
		},
		Days: []string{"Monday", "Tuesday"},
	}

	sched, err := newTestOptimal().Solve(context.Background(), schema, model.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	hours := sched.HoursByEmployee(schema.ShiftStructure)
	if hours["Alice"] != 16 {
		t.Errorf("Alice 工时 = %d, want 16", hours["Alice"])
	}
	if hours["Carol"] != 8 {
		t.Errorf("Carol 工时 = %d, want 8", hours["Carol"])
	}
}

func TestOptimal_Availability(t *testing.T) {
	// Alice 50%：目标 8 小时，只能排周二
	half := 50
	schema := &model.Schema{
		CompanyName: "Cafe",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Day", Hours: 8, MinStaff: 1},
		},
		Employees: []model.Employee{
			{
				Name:           "Alice",
				EmploymentType: model.EmploymentPartTime,
				WorkPercentage: &half,
				Availability:   &model.Availability{UnavailableDays: []string{"Monday"}},
			},
			{Name: "Bob", EmploymentType: model.EmploymentFullTime},
		},
		Days: []string{"Monday", "Tuesday"},
	}
	opts := model.DefaultOptions()
	opts.RelaxWorkPercentage = true

	sched, err := newTestOptimal().Solve(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	for _, slot := range sched.SlotsFor("Monday") {
		if slot.Employee == "Alice" {
			t.Error("Alice 周一不可用却被排班")
		}
	}
}

func TestOptimal_RoleCoverage(t *testing.T) {
	schema := &model.Schema{
		CompanyName: "Cafe",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Day", Hours: 8, MinStaff: 1, RequiredRoles: map[string]int{"barista": 1}},
		},
		Employees: []model.Employee{
			{Name: "Alice", EmploymentType: model.EmploymentFullTime, RolesPrimary: []string{"barista"}},
			{Name: "Bob", EmploymentType: model.EmploymentFullTime},
		},
		Days: []string{"Monday"},
	}
	opts := model.DefaultOptions()
	opts.RelaxWorkPercentage = true
	opts.RelaxCoverage = true // 角色覆盖不受影响，仍需一名 barista

	sched, err := newTestOptimal().Solve(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	hasBarista := false
	for _, slot := range sched.SlotsFor("Monday") {
		if slot.Employee == "Alice" {
			hasBarista = true
		}
	}
	if !hasBarista {
		t.Error("角色覆盖约束应保证至少一名 barista")
	}
}

func TestOptimal_FairnessSpreadsDays(t *testing.T) {
	// 两名 50% 兼职各排一天，放松覆盖后模型允许挤在同一天：
	// 公平目标必须把两人分到不同的天（每日人数 1/1 而不是 2/0）
	half := 50
	schema := &model.Schema{
		CompanyName: "Cafe",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Day", Hours: 8, MinStaff: 1},
		},
		Employees: []model.Employee{
			{Name: "Alice", EmploymentType: model.EmploymentPartTime, WorkPercentage: &half},
			{Name: "Bob", EmploymentType: model.EmploymentPartTime, WorkPercentage: &half},
		},
		Days: []string{"Monday", "Tuesday"},
	}
	opts := model.DefaultOptions()
	opts.RelaxCoverage = true

	sched, err := newTestOptimal().Solve(context.Background(), schema, opts)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	counts := sched.HeadcountByDay()
	if counts["Monday"] != 1 || counts["Tuesday"] != 1 {
		t.Errorf("每日人数 = %v, want Monday=1 Tuesday=1", counts)
	}
}

func TestOptimal_FairnessWeightMonotone(t *testing.T) {
	// 更大的权重不得产生更差的每日人数极差
	half := 50
	schema := &model.Schema{
		CompanyName: "Cafe",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Day", Hours: 8, MinStaff: 1},
		},
		Employees: []model.Employee{
			{Name: "Alice", EmploymentType: model.EmploymentPartTime, WorkPercentage: &half},
			{Name: "Bob", EmploymentType: model.EmploymentPartTime, WorkPercentage: &half},
			{Name: "Carol", EmploymentType: model.EmploymentFullTime},
		},
		Days: []string{"Monday", "Tuesday"},
	}

	spread := func(weight int) int {
		opts := model.DefaultOptions()
		opts.RelaxCoverage = true
		opts.FairnessWeight = weight
		sched, err := newTestOptimal().Solve(context.Background(), schema, opts)
		if err != nil {
			t.Fatalf("weight=%d Solve() error = %v", weight, err)
		}
		counts := sched.HeadcountByDay()
		min, max := counts[schema.Days[0]], counts[schema.Days[0]]
		for _, day := range schema.Days {
			if counts[day] < min {
				min = counts[day]
			}
			if counts[day] > max {
				max = counts[day]
			}
		}
		return max - min
	}

	low := spread(1)
	high := spread(5)
	if high > low {
		t.Errorf("极差随权重变差: weight=1 时 %d, weight=5 时 %d", low, high)
	}
	// Carol 两天都上，Alice/Bob 分到不同天即可做到 2/2
	if low != 0 {
		t.Errorf("weight=1 极差 = %d, want 0", low)
	}
}

func TestOptimal_Timeout(t *testing.T) {
	schema := &model.Schema{
		CompanyName: "Cafe",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Day", Hours: 8, MinStaff: 1},
		},
		Employees: []model.Employee{
			{Name: "Alice", EmploymentType: model.EmploymentFullTime},
		},
		Days: []string{"Monday"},
	}
	opts := model.DefaultOptions()
	opts.Timeout = time.Nanosecond

	_, err := newTestOptimal().Solve(context.Background(), schema, opts)
	if err == nil {
		t.Fatal("超时应返回错误")
	}
	if errors.GetCode(err) != errors.CodeTimeout {
		t.Errorf("错误码 = %s, want TIMEOUT", errors.GetCode(err))
	}
}

// stubSolver 固定返回某个状态的注入后端
type stubSolver struct {
	status cpsat.Status
}

func (s *stubSolver) Solve(ctx context.Context, m *cpsat.Model) *cpsat.Solution {
	return &cpsat.Solution{Status: s.status}
}

func TestOptimal_BackendStatusMapping(t *testing.T) {
	schema := &model.Schema{
		CompanyName: "Cafe",
		ShiftStructure: []model.ShiftDefinition{
			{Name: "Day", Hours: 8, MinStaff: 1},
		},
		Employees: []model.Employee{
			{Name: "Alice", EmploymentType: model.EmploymentFullTime},
		},
		Days: []string{"Monday"},
	}

	tests := []struct {
		name     string
		status   cpsat.Status
		wantCode errors.Code
	}{
		{name: "不可行", status: cpsat.StatusInfeasible, wantCode: errors.CodeNoFeasibleSolution},
		{name: "超时未解", status: cpsat.StatusUnknown, wantCode: errors.CodeTimeout},
		{name: "模型非法", status: cpsat.StatusModelInvalid, wantCode: errors.CodeSolverFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptimal(&stubSolver{status: tt.status}, time.Second)
			_, err := o.Solve(context.Background(), schema, model.DefaultOptions())
			if errors.GetCode(err) != tt.wantCode {
				t.Errorf("错误码 = %s, want %s", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

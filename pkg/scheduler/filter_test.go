package scheduler

import (
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
)

func intPtr(v int) *int { return &v }

func filterSchema() *model.Schema {
	wp60 := 60
	wp100 := 100
	return &model.Schema{
		CompanyName: "Cafe",
		Employees: []model.Employee{
			{Name: "Alice", WorkPercentage: &wp100, ExperienceYears: 5},
			{Name: "Bob", WorkPercentage: &wp60, ExperienceYears: 2},
			{Name: "Carol", ExperienceYears: 0}, // 未填写工作比例，视为 100
		},
	}
}

func TestFilterEmployees(t *testing.T) {
	tests := []struct {
		name string
		wp   *int
		exp  *int
		want []string
	}{
		{
			name: "无阈值保留全部",
			want: []string{"Alice", "Bob", "Carol"},
		},
		{
			name: "工作比例严格大于60",
			wp:   intPtr(60),
			want: []string{"Alice", "Carol"},
		},
		{
			name: "经验严格大于2年",
			exp:  intPtr(2),
			want: []string{"Alice"},
		},
		{
			name: "两个阈值都生效",
			wp:   intPtr(50),
			exp:  intPtr(1),
			want: []string{"Alice", "Bob"},
		},
		{
			name: "阈值100过滤掉缺省值员工",
			wp:   intPtr(100),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEmployees(filterSchema(), tt.wp, tt.exp)
			if len(got.Employees) != len(tt.want) {
				t.Fatalf("保留 %d 人, want %d", len(got.Employees), len(tt.want))
			}
			for i, name := range tt.want {
				if got.Employees[i].Name != name {
					t.Errorf("Employees[%d] = %s, want %s", i, got.Employees[i].Name, name)
				}
			}
		})
	}
}

func TestFilterEmployees_CopySafety(t *testing.T) {
	src := filterSchema()
	filtered := FilterEmployees(src, intPtr(60), nil)

	// 无论过滤与否，副本上的修改不得影响原件
	filtered.CompanyName = "changed"
	if len(filtered.Employees) > 0 {
		filtered.Employees[0].Name = "changed"
	}
	if src.CompanyName != "Cafe" || src.Employees[0].Name != "Alice" {
		t.Error("FilterEmployees 应返回深拷贝")
	}
	if len(src.Employees) != 3 {
		t.Errorf("原件员工数被改变: %d", len(src.Employees))
	}

	// 无阈值路径同样是深拷贝
	clone := FilterEmployees(src, nil, nil)
	clone.Employees[0].Name = "changed"
	if src.Employees[0].Name != "Alice" {
		t.Error("无阈值时也应返回深拷贝")
	}
}

// Package validator 提供排班输入的轻量校验
package validator

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/model"
)

// Validate 对 Schema 做轻量完整性检查，返回人类可读的警告列表
// 空列表表示可以排班；警告只是建议，是否继续由调用方决定
// 纯函数：不修改输入，重复调用结果完全一致
func Validate(schema *model.Schema) []string {
	var warnings []string

	if schema.CompanyName == "" {
		warnings = append(warnings, "Missing company_name.")
	}
	if len(schema.OpeningHours) == 0 {
		warnings = append(warnings, "Missing opening_hours.")
	}
	if len(schema.Employees) == 0 {
		warnings = append(warnings, "Missing or empty employees list.")
	}
	if len(schema.ShiftStructure) == 0 {
		warnings = append(warnings, "Missing shift_structure.")
	}

	for i := range schema.Employees {
		emp := &schema.Employees[i]
		if emp.Name == "" {
			warnings = append(warnings, "One employee missing name.")
		}
		if emp.EmploymentType == "" {
			name := emp.Name
			if name == "" {
				name = "Unknown"
			}
			warnings = append(warnings, fmt.Sprintf("Employee %s missing employment_type.", name))
		}
	}

	return warnings
}

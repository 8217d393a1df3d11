package resume

import "fmt"

// Validate 校验简历记录的结构合法性。结构非法是致命条件：
// 调用方必须在任何绘制开始前失败。可选字段缺失不构成结构非法。
func (r *Resume) Validate() error {
	if r == nil {
		return fmt.Errorf("简历记录为空")
	}
	if r.BasicInfo.Name == "" {
		return fmt.Errorf("简历缺少姓名（basicInfo.name）")
	}
	if r.BasicInfo.Email == "" {
		return fmt.Errorf("简历缺少邮箱（basicInfo.email）")
	}
	for i, exp := range r.Experience {
		if exp.Title == "" && exp.Company == "" {
			return fmt.Errorf("experience[%d] 缺少职位与公司", i)
		}
	}
	for i, p := range r.Projects {
		if p.Name == "" {
			return fmt.Errorf("projects[%d] 缺少名称", i)
		}
	}
	for i, s := range r.Skills {
		if s.Category == "" && len(s.Items) == 0 {
			return fmt.Errorf("skills[%d] 为空分组", i)
		}
	}
	for i, e := range r.Education {
		if e.Institution == "" {
			return fmt.Errorf("education[%d] 缺少院校", i)
		}
	}
	return nil
}

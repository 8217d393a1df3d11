// Package resume 定义渲染输入的简历记录。记录由外部持久化协作方产出，
// 本包只负责结构与校验，不负责存取。
package resume

// Resume 是渲染输入的完整简历记录。除 BasicInfo 外的段落均可缺省，
// 缺省段落在布局时跳过，绝不因可选字段缺失而失败。
type Resume struct {
	BasicInfo  BasicInfo    `json:"basicInfo"`
	Summary    string       `json:"summary,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Projects   []Project    `json:"projects,omitempty"`
	Skills     []SkillGroup `json:"skills,omitempty"`
	Education  []Education  `json:"education,omitempty"`
}

// BasicInfo 是页眉区的基本信息。Name 与 Email 为必填。
type BasicInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Headline string `json:"headline,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Experience 是一段工作经历。Current 为 true 时结束日期渲染为 "Now"。
type Experience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current,omitempty"`
	Description  string   `json:"description,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// DateRange 返回渲染用的日期区间文本。
func (e Experience) DateRange() string {
	return dateRange(e.StartDate, e.EndDate, e.Current)
}

// Project 是一个项目条目。
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// SkillGroup 把技能按类别分组。
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Education 是一段教育经历。
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

// DateRange 返回渲染用的日期区间文本。
func (e Education) DateRange() string {
	return dateRange(e.StartDate, e.EndDate, e.Current)
}

func dateRange(start, end string, current bool) string {
	if current {
		end = "Now"
	}
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}

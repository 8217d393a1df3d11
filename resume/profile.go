package resume

// Profile 是档案协作方提供的兜底信息：当简历记录缺少基本信息或
// 教育经历时，用档案字段补齐。档案的存取由协作方负责。
type Profile struct {
	Locale    string      `json:"locale,omitempty"`
	BasicInfo BasicInfo   `json:"basicInfo"`
	Education []Education `json:"education,omitempty"`
}

// Provider 抽象档案协作方。
type Provider interface {
	Profile() (*Profile, error)
}

// ApplyProfile 把档案中的兜底字段合并进简历：只填充缺失值，
// 从不覆盖简历中已有的内容。profile 为 nil 时不做任何事。
func ApplyProfile(r *Resume, p *Profile) {
	if r == nil || p == nil {
		return
	}
	fill(&r.BasicInfo.Name, p.BasicInfo.Name)
	fill(&r.BasicInfo.Email, p.BasicInfo.Email)
	fill(&r.BasicInfo.Headline, p.BasicInfo.Headline)
	fill(&r.BasicInfo.Phone, p.BasicInfo.Phone)
	fill(&r.BasicInfo.Location, p.BasicInfo.Location)
	fill(&r.BasicInfo.Website, p.BasicInfo.Website)
	if len(r.Education) == 0 {
		r.Education = append(r.Education, p.Education...)
	}
}

func fill(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}

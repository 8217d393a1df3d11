package resume

import "testing"

func minimal() *Resume {
	return &Resume{BasicInfo: BasicInfo{Name: "Ana Lee", Email: "ana@x.com"}}
}

func TestValidateMinimalResume(t *testing.T) {
	if err := minimal().Validate(); err != nil {
		t.Fatalf("仅有姓名+邮箱的简历应合法: %v", err)
	}
}

func TestValidateFatalConditions(t *testing.T) {
	var nilResume *Resume
	if err := nilResume.Validate(); err == nil {
		t.Fatalf("空记录应报错")
	}
	r := minimal()
	r.BasicInfo.Name = ""
	if err := r.Validate(); err == nil {
		t.Fatalf("缺姓名应报错")
	}
	r = minimal()
	r.BasicInfo.Email = ""
	if err := r.Validate(); err == nil {
		t.Fatalf("缺邮箱应报错")
	}
	r = minimal()
	r.Experience = []Experience{{}}
	if err := r.Validate(); err == nil {
		t.Fatalf("空经历条目应报错")
	}
	r = minimal()
	r.Education = []Education{{Degree: "BSc"}}
	if err := r.Validate(); err == nil {
		t.Fatalf("缺院校应报错")
	}
}

func TestDateRange(t *testing.T) {
	e := Experience{StartDate: "2020-01", Current: true}
	if got := e.DateRange(); got != "2020-01 - Now" {
		t.Fatalf("进行中经历日期区间不符: %q", got)
	}
	e = Experience{StartDate: "2020-01", EndDate: "2022-05"}
	if got := e.DateRange(); got != "2020-01 - 2022-05" {
		t.Fatalf("日期区间不符: %q", got)
	}
	e = Experience{StartDate: "2020-01"}
	if got := e.DateRange(); got != "2020-01" {
		t.Fatalf("仅有开始日期时应原样输出: %q", got)
	}
	if got := (Experience{}).DateRange(); got != "" {
		t.Fatalf("无日期时应为空: %q", got)
	}
}

func TestApplyProfileFillsOnlyMissing(t *testing.T) {
	r := minimal()
	r.BasicInfo.Headline = "Engineer"
	p := &Profile{
		Locale: "zh-CN",
		BasicInfo: BasicInfo{
			Name:     "别名",
			Headline: "Architect",
			Location: "Beijing",
		},
		Education: []Education{{Institution: "清华大学", Degree: "学士"}},
	}
	ApplyProfile(r, p)
	if r.BasicInfo.Name != "Ana Lee" {
		t.Fatalf("已有字段不应被档案覆盖: %q", r.BasicInfo.Name)
	}
	if r.BasicInfo.Headline != "Engineer" {
		t.Fatalf("已有 headline 不应被覆盖: %q", r.BasicInfo.Headline)
	}
	if r.BasicInfo.Location != "Beijing" {
		t.Fatalf("缺失字段应回填: %q", r.BasicInfo.Location)
	}
	if len(r.Education) != 1 || r.Education[0].Institution != "清华大学" {
		t.Fatalf("教育经历缺失时应使用档案兜底: %+v", r.Education)
	}
	// 幂等：再次合并不应追加
	ApplyProfile(r, p)
	if len(r.Education) != 1 {
		t.Fatalf("重复合并不应追加教育经历")
	}
}

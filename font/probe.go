package font

import (
	"os"
	"runtime"
)

// systemCJKPaths 按操作系统列出预装 CJK 字体的固定探测路径。
// 顺序即优先级；探测只读取第一个存在且可解析的文件。
func systemCJKPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/System/Library/Fonts/PingFang.ttc",
			"/System/Library/Fonts/Hiragino Sans GB.ttc",
			"/System/Library/Fonts/STHeiti Light.ttc",
			"/System/Library/Fonts/AppleSDGothicNeo.ttc",
		}
	case "windows":
		return []string{
			`C:\Windows\Fonts\msyh.ttc`,
			`C:\Windows\Fonts\msyh.ttf`,
			`C:\Windows\Fonts\simsun.ttc`,
			`C:\Windows\Fonts\YuGothM.ttc`,
			`C:\Windows\Fonts\malgun.ttf`,
		}
	default: // linux 及其他类 unix
		return []string{
			"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
			"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
			"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
		}
	}
}

// probeSystem 读取第一个存在且通过 SFNT 校验的系统 CJK 字体。
// 所有失败都吞掉并返回 nil：探测失败只是链条中一步不可用。
func probeSystem(paths []string) []byte {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if validate(data) != nil {
			continue
		}
		return data
	}
	return nil
}

package font

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoints 是 CJK 字体包的内容分发地址，按字重区分。
// http.Client 默认跟随重定向，非 2xx 响应视为该步失败。
var DefaultEndpoints = map[Weight]string{
	Regular: "https://raw.githubusercontent.com/googlefonts/noto-cjk/main/Sans/OTF/SimplifiedChinese/NotoSansCJKsc-Regular.otf",
	Bold:    "https://raw.githubusercontent.com/googlefonts/noto-cjk/main/Sans/OTF/SimplifiedChinese/NotoSansCJKsc-Bold.otf",
}

// DefaultFetchTimeout 约束单次远程获取；超时按该步失败处理。
const DefaultFetchTimeout = 30 * time.Second

// fetchRemote 从 url 下载字体包并校验。返回错误表示该链条步骤不可用。
func fetchRemote(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("未配置远程字体地址")
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构造字体下载请求失败: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("下载字体 %s 失败: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("下载字体 %s 返回 %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取字体响应失败: %w", err)
	}
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("远程字体不可用: %w", err)
	}
	return data, nil
}

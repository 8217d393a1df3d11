package font

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"
)

func newTestResolver(t *testing.T, opts Options) *Resolver {
	t.Helper()
	if opts.Cache == nil {
		c, err := NewCache(t.TempDir())
		if err != nil {
			t.Fatalf("NewCache: %v", err)
		}
		opts.Cache = c
	}
	return NewResolver(opts)
}

// TestResolveLatinUsesBundled 拉丁请求直接命中内置资产。
func TestResolveLatinUsesBundled(t *testing.T) {
	r := newTestResolver(t, Options{Probes: []string{}})
	res := r.Resolve(context.Background(), Request{Family: "Inter", Weight: Regular})
	if len(res.Data) == 0 {
		t.Fatalf("内置字体不应为空")
	}
	if res.Source != "bundled" {
		t.Fatalf("expected bundled, got %q", res.Source)
	}
	if res.CJKCoverage {
		t.Fatalf("内置拉丁资产不应声明 CJK 覆盖")
	}
}

// TestResolveTotalWithoutNetworkOrSystemFont 无网络、无系统字体时仍返回可用（降级）字体。
func TestResolveTotalWithoutSystemFontOrNetwork(t *testing.T) {
	r := newTestResolver(t, Options{
		Probes:    []string{"/nonexistent/font.ttc"},
		Endpoints: map[Weight]string{}, // 未配置地址 = 网络步骤必败
	})
	res := r.Resolve(context.Background(), Request{Family: "Noto Sans SC", Weight: Regular, NeedsCJK: true})
	if len(res.Data) == 0 {
		t.Fatalf("解析链必须是全函数，不能返回空字体")
	}
	if res.Source != "fallback" {
		t.Fatalf("expected fallback, got %q", res.Source)
	}
	if res.CJKCoverage {
		t.Fatalf("降级字体不应声明 CJK 覆盖")
	}
}

// TestResolveRemoteThenWarmCache 首次走网络，二次命中缓存且无网络活动，
// 两次结果字节一致。
func TestResolveRemoteThenWarmCache(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		w.Write(goregular.TTF) // 任何可解析的 SFNT 都能通过校验
	}))
	defer srv.Close()

	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	mk := func() *Resolver {
		return NewResolver(Options{
			Cache:     cache,
			Probes:    []string{},
			Endpoints: map[Weight]string{Regular: srv.URL},
			Timeout:   5 * time.Second,
		})
	}
	req := Request{Family: "Noto Sans SC", Weight: Regular, NeedsCJK: true}

	first := mk().Resolve(context.Background(), req)
	if first.Source != "remote" {
		t.Fatalf("首次应远程获取, got %q", first.Source)
	}
	if hits.Load() != 1 {
		t.Fatalf("首次应恰好一次网络请求, got %d", hits.Load())
	}

	// 新实例 + 同缓存目录：命中磁盘缓存，不再访问网络。
	second := mk().Resolve(context.Background(), req)
	if second.Source != "cache" {
		t.Fatalf("二次应命中缓存, got %q", second.Source)
	}
	if hits.Load() != 1 {
		t.Fatalf("二次解析不应有网络活动, hits=%d", hits.Load())
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Fatalf("暖缓存结果必须与首个结果字节一致")
	}
}

// TestResolveNon2xxAdvancesChain 非 2xx 响应只判该步失败，链条继续。
func TestResolveNon2xxAdvancesChain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	r := newTestResolver(t, Options{
		Probes:    []string{},
		Endpoints: map[Weight]string{Regular: srv.URL},
	})
	res := r.Resolve(context.Background(), Request{Family: "Noto Sans SC", NeedsCJK: true})
	if res.Source != "fallback" {
		t.Fatalf("非 2xx 后应落到降级字体, got %q", res.Source)
	}
}

// TestResolveNoRetryWithinRun 失败的远程步骤在同一实例内不再重试。
func TestResolveNoRetryWithinRun(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := newTestResolver(t, Options{
		Probes:    []string{},
		Endpoints: map[Weight]string{Regular: srv.URL},
	})
	r.Resolve(context.Background(), Request{Family: "A", NeedsCJK: true})
	r.Resolve(context.Background(), Request{Family: "B", NeedsCJK: true})
	if hits.Load() != 1 {
		t.Fatalf("失败步骤不应重试: hits=%d", hits.Load())
	}
}

// TestResolveSubsetKeyedSeparately 子集感知请求使用独立缓存键。
func TestResolveSubsetKeyedSeparately(t *testing.T) {
	full := Request{Family: "Noto Sans SC", Weight: Regular, NeedsCJK: true}
	sub := Request{Family: "Noto Sans SC", Weight: Regular, NeedsCJK: true, Subset: "你好"}
	if full.Key() == sub.Key() {
		t.Fatalf("子集请求与全量请求不应共用缓存键")
	}
}

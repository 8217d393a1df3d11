package font

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ByLCY/vitae/fonts"
)

// Options 配置解析器。零值字段取默认。
type Options struct {
	Cache     *Cache            // 必填
	Client    *http.Client      // 为 nil 时使用 http.DefaultClient
	Endpoints map[Weight]string // 为 nil 时使用 DefaultEndpoints
	Timeout   time.Duration     // 远程获取超时，<=0 取 DefaultFetchTimeout
	Probes    []string          // 系统字体探测路径，为 nil 时按 GOOS 取固定列表
	Logger    *zap.Logger       // 为 nil 时不输出日志
}

// Resolver 实现解析链。Resolve 是全函数：总能返回可用字体、从不报错。
// 同一解析器实例内，已失败的步骤不会在后续请求中重试。
type Resolver struct {
	cache     *Cache
	client    *http.Client
	endpoints map[Weight]string
	timeout   time.Duration
	probes    []string
	logger    *zap.Logger

	mu       sync.Mutex
	resolved map[string]Resolved
	failed   map[string]bool // 键形如 "probe" / "remote:<weight>"
}

// NewResolver 创建解析器。
func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		cache:     opts.Cache,
		client:    opts.Client,
		endpoints: opts.Endpoints,
		timeout:   opts.Timeout,
		probes:    opts.Probes,
		logger:    opts.Logger,
		resolved:  map[string]Resolved{},
		failed:    map[string]bool{},
	}
	if r.client == nil {
		r.client = http.DefaultClient
	}
	if r.endpoints == nil {
		r.endpoints = DefaultEndpoints
	}
	if r.probes == nil {
		r.probes = systemCJKPaths()
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Resolve 按解析链返回可用字体。步骤：
//  1. 内置资产（拉丁覆盖恒可用）；
//  2. scriptHint 需要 CJK 时：缓存 → 系统探测 → 远程获取；
//  3. 终端兜底：降级内置字体（无 CJK 字形），该步必然成功。
//
// 步骤 2 的命中会回填磁盘缓存；缓存写失败只记日志，结果照常返回。
func (r *Resolver) Resolve(ctx context.Context, req Request) Resolved {
	if req.Weight == "" {
		req.Weight = Regular
	}

	r.mu.Lock()
	if hit, ok := r.resolved[req.Key()]; ok {
		r.mu.Unlock()
		return hit
	}
	r.mu.Unlock()

	res := r.resolve(ctx, req)

	r.mu.Lock()
	r.resolved[req.Key()] = res
	r.mu.Unlock()
	return res
}

func (r *Resolver) resolve(ctx context.Context, req Request) Resolved {
	if !req.NeedsCJK {
		if data, err := fonts.Load(req.Family, string(req.Weight)); err == nil {
			return Resolved{Data: data, Source: "bundled"}
		}
		// 内置资产对拉丁请求恒可用；到这里只可能是未知字重，走兜底。
		return r.fallback(req)
	}

	// CJK 请求：磁盘缓存优先，命中即跳过探测与网络。
	if data, ok := r.cacheGet(req.Key()); ok {
		return Resolved{Data: data, CJKCoverage: true, Source: "cache"}
	}

	if data := r.probeOnce(); data != nil {
		r.cachePut(req.Key(), data)
		return Resolved{Data: data, CJKCoverage: true, Source: "system"}
	}

	if data := r.fetchOnce(ctx, req.Weight); data != nil {
		r.cachePut(req.Key(), data)
		return Resolved{Data: data, CJKCoverage: true, Source: "remote"}
	}

	return r.fallback(req)
}

// fallback 是终端兜底：降级字体覆盖不了 CJK，但保证渲染不中断。
func (r *Resolver) fallback(req Request) Resolved {
	if req.NeedsCJK {
		r.logger.Warn("字体解析链全部失败，使用降级字体（缺少 CJK 字形）",
			zap.String("family", req.Family),
			zap.String("weight", string(req.Weight)))
	}
	return Resolved{Data: fonts.Fallback(), Source: "fallback"}
}

func (r *Resolver) cacheGet(key string) ([]byte, bool) {
	if r.cache == nil {
		return nil, false
	}
	return r.cache.Get(key)
}

func (r *Resolver) cachePut(key string, data []byte) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Put(key, data); err != nil {
		r.logger.Warn("字体缓存写入失败，本次结果不持久化", zap.String("key", key), zap.Error(err))
	}
}

// probeOnce 探测系统字体；一次失败后同一实例内不再重试。
func (r *Resolver) probeOnce() []byte {
	r.mu.Lock()
	dead := r.failed["probe"]
	r.mu.Unlock()
	if dead {
		return nil
	}
	data := probeSystem(r.probes)
	if data == nil {
		r.mu.Lock()
		r.failed["probe"] = true
		r.mu.Unlock()
		r.logger.Warn("未探测到系统 CJK 字体", zap.Int("paths", len(r.probes)))
	}
	return data
}

// fetchOnce 远程获取字体包；同字重失败后同一实例内不再重试。
func (r *Resolver) fetchOnce(ctx context.Context, weight Weight) []byte {
	step := "remote:" + string(weight)
	r.mu.Lock()
	dead := r.failed[step]
	r.mu.Unlock()
	if dead {
		return nil
	}
	data, err := fetchRemote(ctx, r.client, r.endpoints[weight], r.timeout)
	if err != nil {
		r.mu.Lock()
		r.failed[step] = true
		r.mu.Unlock()
		r.logger.Warn("远程字体获取失败，进入下一链条步骤", zap.Error(err))
		return nil
	}
	return data
}

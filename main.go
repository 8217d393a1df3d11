package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ByLCY/vitae/font"
	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/renderer"
	canvasrenderer "github.com/ByLCY/vitae/renderer/canvas"
	"github.com/ByLCY/vitae/resume"
	"github.com/ByLCY/vitae/theme"
	"github.com/ByLCY/vitae/typeset"
)

func main() {
	input := flag.String("in", "resume.json", "简历 JSON 文件路径")
	output := flag.String("out", "output/resume.pdf", "PDF 输出路径")
	themeName := flag.String("theme", "minimalist", "主题名称")
	pageSize := flag.String("page", "A4", "页面尺寸（A4 或 letter）")
	fontFamily := flag.String("font", "", "字体族覆盖")
	profilePath := flag.String("profile", "", "用户档案 JSON，用于填充简历缺失字段")
	themesPath := flag.String("themes", "", "附加主题定义文件路径（.theme）")
	configPath := flag.String("config", "", "配置文件路径（yaml/json/toml）")
	debugPath := flag.String("debug", "", "布局调试 JSON 输出路径")
	clearCache := flag.Bool("clear-cache", false, "清空字体磁盘缓存后退出")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := loadConfig(*configPath); err != nil {
		logger.Fatal("加载配置失败", zap.Error(err))
	}

	cache, err := font.NewCache(viper.GetString("cache_dir"))
	if err != nil {
		logger.Fatal("初始化字体缓存失败", zap.Error(err))
	}

	if *clearCache {
		if err := cache.Clear(); err != nil {
			logger.Fatal("清空字体缓存失败", zap.Error(err))
		}
		fmt.Println("字体缓存已清空")
		return
	}

	if *themesPath != "" {
		if err := theme.LoadFile(*themesPath); err != nil {
			logger.Fatal("加载主题文件失败", zap.Error(err))
		}
	}

	opts := runOptions{
		input:      *input,
		output:     *output,
		theme:      *themeName,
		pageSize:   *pageSize,
		fontFamily: *fontFamily,
		profile:    *profilePath,
		debug:      *debugPath,
	}
	if err := run(context.Background(), opts, cache, logger); err != nil {
		logger.Fatal("生成 PDF 失败", zap.Error(err))
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// loadConfig 初始化配置：环境变量前缀 VITAE，可选配置文件覆盖默认值。
func loadConfig(path string) error {
	viper.SetEnvPrefix("vitae")
	viper.AutomaticEnv()
	viper.SetDefault("cache_dir", "")
	viper.SetDefault("fetch_timeout", font.DefaultFetchTimeout)
	viper.SetDefault("font_endpoint_regular", "")
	viper.SetDefault("font_endpoint_bold", "")
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	return nil
}

func endpointsFromConfig() map[font.Weight]string {
	eps := map[font.Weight]string{}
	for w, url := range font.DefaultEndpoints {
		eps[w] = url
	}
	if url := viper.GetString("font_endpoint_regular"); url != "" {
		eps[font.Regular] = url
	}
	if url := viper.GetString("font_endpoint_bold"); url != "" {
		eps[font.Bold] = url
	}
	return eps
}

type runOptions struct {
	input      string
	output     string
	theme      string
	pageSize   string
	fontFamily string
	profile    string
	debug      string
}

// run 串联简历加载、布局与渲染。
func run(ctx context.Context, opts runOptions, cache *font.Cache, logger *zap.Logger) error {
	r, err := loadResume(opts.input)
	if err != nil {
		return err
	}
	if opts.profile != "" {
		var provider resume.Provider = fileProvider{path: opts.profile}
		profile, err := provider.Profile()
		if err != nil {
			return err
		}
		resume.ApplyProfile(r, profile)
	}

	th, err := theme.Lookup(opts.theme)
	if err != nil {
		return err
	}

	resolver := font.NewResolver(font.Options{
		Cache:     cache,
		Endpoints: endpointsFromConfig(),
		Timeout:   viper.GetDuration("fetch_timeout"),
		Logger:    logger,
	})
	ts := typeset.New(resolver, logger)

	engine, err := layout.NewEngine(layout.EngineConfig{
		Typesetter: ts,
		Theme:      th,
		PageSize:   opts.pageSize,
		FontFamily: opts.fontFamily,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	// ctx 预留给未来的取消语义；布局与渲染当前都是同步计算。
	_ = ctx
	result, err := engine.Render(r)
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if opts.debug != "" {
		if err := writeDebug(result, opts.debug); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(opts.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	var rend renderer.Renderer = canvasrenderer.New(ts)
	pdfBytes, err := rend.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(opts.output, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	logger.Info("渲染完成",
		zap.String("out", opts.output),
		zap.Int("pages", len(result.Pages)),
		zap.Int("bytes", len(pdfBytes)))
	return nil
}

func loadResume(path string) (*resume.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取简历文件 %s: %w", path, err)
	}
	var r resume.Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("解析简历 JSON 失败: %w", err)
	}
	return &r, nil
}

// fileProvider 从 JSON 文件读取档案，实现 resume.Provider。
type fileProvider struct {
	path string
}

func (f fileProvider) Profile() (*resume.Profile, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("无法读取档案文件 %s: %w", f.path, err)
	}
	var p resume.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("解析档案 JSON 失败: %w", err)
	}
	return &p, nil
}

func writeDebug(result *layout.Result, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
	}
	if err := layout.DumpDebugJSON(path, result); err != nil {
		return err
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ByLCY/labelsheet/binding"
	"github.com/ByLCY/labelsheet/config"
	"github.com/ByLCY/labelsheet/fonts"
	"github.com/ByLCY/labelsheet/layout"
	canvasrenderer "github.com/ByLCY/labelsheet/renderer/canvas"
	"github.com/ByLCY/labelsheet/table"
)

// session 是一次运行中已加载并校验过的输入。
type session struct {
	settings *config.Settings
	table    *table.Table
	cfg      layout.Config
	renderer *canvasrenderer.Renderer
	setup    *layout.Setup
}

// load 串联配置、数据表与布局准备；所有配置错误都在这里暴露。
func load(opts *options, logger *slog.Logger) (*session, error) {
	settings, err := config.Load(config.Paths{Content: opts.content, Layout: opts.layout, YAML: opts.yaml})
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	if opts.fontDir != "" {
		dir, err := filepath.Abs(opts.fontDir)
		if err != nil {
			return nil, fmt.Errorf("字体目录 %s 无效: %w", opts.fontDir, err)
		}
		settings.FontDir = dir
	}
	logger.Info("创建标签", "label_type", settings.LabelType)
	logger.Info("使用数据表", "spreadsheet", settings.SpreadsheetPath())

	tbl, err := table.Load(settings.SpreadsheetPath(), table.Options{Sheet: settings.Sheet})
	if err != nil {
		return nil, err
	}
	logger.Info("待生成标签数", "labels", tbl.Len())
	logger.Info("数据表列数", "columns", tbl.Columns)
	if tbl.Len() == 0 {
		return nil, fmt.Errorf("数据表 %s 没有任何记录", settings.SpreadsheetPath())
	}

	cfg, err := settings.ToLayout()
	if err != nil {
		return nil, err
	}
	r := canvasrenderer.NewRenderer(fonts.NewLibrary(settings.FontDirPath()))
	setup, err := layout.Prepare(cfg, tbl.Columns, r)
	if err != nil {
		return nil, err
	}
	logger.Info("标签容量",
		"max_lines", setup.Capacity.MaxLines,
		"template_lines", len(setup.Template),
		"line_height_mm", setup.Capacity.LineHeight,
		"text_width_mm", setup.Capacity.TextMaxWidth,
	)
	return &session{settings: settings, table: tbl, cfg: cfg, renderer: r, setup: setup}, nil
}

// run 串联加载、布局与渲染，返回写出的 PDF 路径。
func run(opts *options, logger *slog.Logger) (string, error) {
	s, err := load(opts, logger)
	if err != nil {
		return "", err
	}

	outputPath := opts.out
	if outputPath == "" {
		name, err := binding.Render(s.settings.OutputPattern(), s.settings.OutputVars())
		if err != nil {
			return "", err
		}
		outputPath = s.settings.Resolve(name)
	}

	title := s.settings.Title
	if title == "" {
		title = filepath.Base(outputPath)
	}
	result, err := layout.Build(s.cfg, s.table.Rows, s.table.Columns, layout.BuildOptions{
		Measurer: s.renderer,
		Workers:  opts.workers,
		Meta: layout.DocumentMeta{
			Title:   title,
			Author:  s.settings.Author,
			Subject: s.settings.LabelType,
			Creator: "labelsheet " + version,
		},
	})
	if err != nil {
		return "", fmt.Errorf("布局计算失败: %w", err)
	}
	logger.Info("页数", "pages", len(result.Pages))

	if opts.debug != "" {
		dump := layout.DebugDump{Config: s.cfg, Setup: s.setup, Result: result}
		if err := writeDebug(dump, opts.debug); err != nil {
			return "", err
		}
	}

	pdfBytes, err := s.renderer.Render(result)
	if err != nil {
		return "", fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return "", fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	logger.Info("输出文件", "path", outputPath)
	return outputPath, nil
}

// check 只做加载与校验，返回容量报告。
func check(opts *options, logger *slog.Logger) (string, error) {
	s, err := load(opts, logger)
	if err != nil {
		return "", err
	}
	grid := layout.Grid{Rows: s.cfg.Rows, Columns: s.cfg.Columns}
	c := s.setup.Capacity
	return fmt.Sprintf("配置有效：%d 条记录，%d 页；模板 %d 行（绑定 %d 行），每张标签最多 %d 行，文本区域 %.2fmm × %.2fmm",
		s.table.Len(), grid.Pages(s.table.Len()), len(s.setup.Template), s.setup.Template.Bound(),
		c.MaxLines, c.TextMaxWidth, c.TextMaxHeight), nil
}

// convert 将当前配置合并为单个 YAML 文档，写到 opts.out 或 w。
// 相对路径原样保留，YAML 文件应放在原配置所在目录。
func convert(opts *options, logger *slog.Logger, w io.Writer) error {
	settings, err := config.Load(config.Paths{Content: opts.content, Layout: opts.layout, YAML: opts.yaml})
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	data, err := settings.ToYAML()
	if err != nil {
		return fmt.Errorf("生成 YAML 失败: %w", err)
	}
	if opts.out == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(opts.out, data, 0o644); err != nil {
		return fmt.Errorf("写入 YAML 文件失败: %w", err)
	}
	logger.Info("已写入 YAML 配置", "path", opts.out, "label_type", settings.LabelType)
	return nil
}

func writeDebug(dump layout.DebugDump, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(dump, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

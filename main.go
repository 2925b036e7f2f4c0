package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

type options struct {
	content string
	layout  string
	yaml    string
	out     string
	debug   string
	fontDir string
	workers int
	verbose bool
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "labelsheet",
		Short:         "根据数据表与模板生成标签纸 PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.content, "content", envOr("LABELSHEET_CONTENT", "config-content.ini"), "内容配置 INI 文件")
	flags.StringVar(&opts.layout, "layout", envOr("LABELSHEET_LAYOUT", "config-layout.ini"), "版式配置 INI 文件")
	flags.StringVar(&opts.yaml, "config", "", "单文件 YAML 配置，设置后忽略 --content 与 --layout")
	flags.StringVar(&opts.fontDir, "font-dir", os.Getenv("LABELSHEET_FONT_DIR"), "Garamond/Arial 字体文件目录")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "输出调试日志")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "生成 PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(opts.verbose)
			path, err := run(opts, logger)
			if err != nil {
				logger.Error("生成 PDF 失败", "error", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已生成 PDF：%s\n", path)
			return nil
		},
	}
	renderCmd.Flags().StringVarP(&opts.out, "out", "o", "", "PDF 输出路径，默认按输出文件名模板生成")
	renderCmd.Flags().StringVar(&opts.debug, "debug", "", "布局调试 JSON 输出路径")
	renderCmd.Flags().IntVar(&opts.workers, "workers", 0, "并行处理标签的 goroutine 数，0 表示 GOMAXPROCS")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "只校验配置、数据与模板，并报告标签容量",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(opts.verbose)
			report, err := check(opts, logger)
			if err != nil {
				logger.Error("校验失败", "error", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "将 INI 配置合并为单个 YAML 配置文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(opts.verbose)
			if err := convert(opts, logger, cmd.OutOrStdout()); err != nil {
				logger.Error("转换配置失败", "error", err)
				return err
			}
			return nil
		},
	}
	convertCmd.Flags().StringVarP(&opts.out, "out", "o", "", "YAML 输出路径，默认写到标准输出")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "显示版本",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "labelsheet %s\n", version)
		},
	}

	root.AddCommand(renderCmd, checkCmd, convertCmd, versionCmd)
	return root
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run_id", uuid.NewString())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

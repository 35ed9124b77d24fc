// Command pic2md converts a RedNote screenshot series into a Markdown
// document. Point it at any one page of a saved series; the rest is
// discovered from the filenames.
//
// Usage:
//
//	pic2md [flags] <screenshot>
//
// Credentials and the default service come from ~/.rednote-pic2md/config.yaml.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	pic2md "github.com/shuncox/rednote-pic2md"
	"github.com/shuncox/rednote-pic2md/config"
	"github.com/shuncox/rednote-pic2md/imageprep"
	"github.com/shuncox/rednote-pic2md/ocr"
)

func main() {
	log.SetFlags(0)

	var (
		configPath = flag.String("config", "", "config file (default ~/.rednote-pic2md/config.yaml)")
		service    = flag.String("service", "", "OCR service: baidu, tencent, aliyun or local (default from config)")
		output     = flag.String("o", "", "output file (default next to the input, named after the series)")
		merge      = flag.Bool("merge", false, "merge paragraphs split across page boundaries")
		quiet      = flag.Bool("q", false, "suppress progress output")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "用法: %s [flags] <截图文件>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *configPath, *service, *output, *merge, *quiet); err != nil {
		log.Printf("错误: %v", err)
		if hint := suggestion(err); hint != "" {
			log.Printf("提示: %s", hint)
		}
		os.Exit(1)
	}
}

func run(input, configPath, service, output string, merge, quiet bool) error {
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := pic2md.Open(input).WithService(cfg.ServiceConfig(service))
	if merge {
		p = p.MergePages()
	}
	if !quiet {
		p = p.OnStatus(func(msg string) { log.Print(msg) })
	}

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}
	if result.Markdown == "" {
		return errors.New("没有识别出任何文字内容")
	}

	if output == "" {
		output = outputPath(input, cfg.Output, result.Series.Key.Title)
	}
	if err := os.WriteFile(output, []byte(result.Markdown), 0o644); err != nil {
		return fmt.Errorf("写入 %s: %w", output, err)
	}
	log.Printf("已保存到 %s", output)
	return nil
}

// outputPath derives the output filename from the configured pattern
// and the series title, next to the input unless a directory is
// configured.
func outputPath(input string, out config.OutputConfig, title string) string {
	if title == "" {
		base := filepath.Base(input)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	pattern := out.FilenamePattern
	if pattern == "" {
		pattern = "{title}"
	}
	name := strings.ReplaceAll(pattern, "{title}", title) + ".md"

	dir := out.Directory
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, name)
}

// suggestion maps a failure to an actionable hint for the user.
func suggestion(err error) string {
	switch {
	case errors.Is(err, ocr.ErrAuthenticationFailed):
		return "检查配置文件中的 API 凭证是否正确"
	case errors.Is(err, ocr.ErrQuotaExceeded):
		return "降低请求频率或等待配额恢复后重试"
	case errors.Is(err, ocr.ErrNetworkFailure):
		return "检查网络连接后重试"
	case errors.Is(err, imageprep.ErrImageTooLarge):
		return "压缩图片或降低分辨率后重试"
	case errors.Is(err, imageprep.ErrUnsupportedFormat):
		return "将图片转换为 JPG 或 PNG 格式后重试"
	case errors.Is(err, ocr.ErrNoProvider):
		return "在配置文件中选择一个 OCR 服务"
	default:
		return ""
	}
}

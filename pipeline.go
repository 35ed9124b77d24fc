package pic2md

import (
	"context"
	"fmt"
	"strings"

	"github.com/shuncox/rednote-pic2md/markdown"
	"github.com/shuncox/rednote-pic2md/ocr"
	"github.com/shuncox/rednote-pic2md/series"
)

// Pipeline is an immutable handle on one conversion. Configuration
// methods return modified copies, so a partially configured pipeline
// can be shared and specialized without interference:
//
//	base := pic2md.Open(path).WithService(cfg)
//	merged := base.MergePages()
//
// Configuration errors are carried inside the pipeline and surface on
// Run, keeping call chains free of intermediate error checks.
type Pipeline struct {
	path    string
	service *ocr.Service
	opts    pipelineOptions
	err     error
}

// Open starts a pipeline for the screenshot at path. The rest of the
// series is discovered from the filename when it follows the RedNote
// web-client naming convention; any other name converts as a single
// page.
func Open(path string) *Pipeline {
	return &Pipeline{path: path, opts: defaultOptions()}
}

func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		path:    p.path,
		service: p.service,
		opts:    p.opts.clone(),
		err:     p.err,
	}
}

// WithService selects and configures the OCR backend. A bad
// configuration is reported by Run.
func (p *Pipeline) WithService(cfg ocr.Config) *Pipeline {
	c := p.clone()
	svc, err := ocr.NewService(cfg)
	if err != nil {
		c.err = fmt.Errorf("configuring OCR service: %w", err)
		return c
	}
	c.service = svc
	return c
}

// WithProvider wires an already-built OCR provider, rate-limited to qps
// requests per second.
func (p *Pipeline) WithProvider(provider ocr.Provider, qps int) *Pipeline {
	c := p.clone()
	c.service = ocr.NewServiceWithProvider(provider, qps)
	return c
}

// MergePages joins paragraphs that a page boundary cut in half. By
// default every page is kept separate behind a "--- 第 N 页 ---" marker.
func (p *Pipeline) MergePages() *Pipeline {
	c := p.clone()
	c.opts.mergePages = true
	return c
}

// OnProgress registers a callback receiving completion percentages.
func (p *Pipeline) OnProgress(fn func(percent int)) *Pipeline {
	c := p.clone()
	c.opts.onProgress = fn
	return c
}

// OnStatus registers a callback receiving progress messages.
func (p *Pipeline) OnStatus(fn func(message string)) *Pipeline {
	c := p.clone()
	c.opts.onStatus = fn
	return c
}

// Result is a finished conversion.
type Result struct {
	// Markdown is the final document.
	Markdown string

	// Series describes the resolved page series, including missing and
	// duplicated page numbers.
	Series series.Descriptor

	// Pages holds the per-page recognition and reconstruction output,
	// in series order.
	Pages []markdown.PageContent
}

// Run executes the conversion: resolve the series, recognize every
// page, reconstruct and render. Recognition failures abort the run; a
// page that yields no text does not, it renders as a placeholder.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.service == nil {
		return nil, ocr.ErrNoProvider
	}

	desc := series.Resolve(p.path)
	p.status(desc.Summary())

	total := len(desc.Pages)
	pages := make([]markdown.PageContent, 0, total)
	for i, pf := range desc.Pages {
		p.status(fmt.Sprintf("正在处理第 %d/%d 页: %s", i+1, total, pf.Path))

		text, err := p.service.Recognize(ctx, pf.Path)
		if err != nil {
			return nil, fmt.Errorf("第 %d 页识别失败: %w", pf.Page, err)
		}
		if strings.TrimSpace(text) == "" {
			text = fmt.Sprintf("【第 %d 页未能识别出文字内容】", pf.Page)
		}
		pages = append(pages, markdown.ProcessPage(pf.Page, text))

		p.progress(progressRecognition * (i + 1) / total)
	}

	p.status("正在重组段落")
	p.progress(progressReconstruct)

	title, author := desc.Key.Title, desc.Key.Author
	if title == "" {
		title = "图片转换结果"
	}
	var doc string
	if p.opts.mergePages {
		doc = markdown.RenderMerged(title, author, pages)
	} else {
		doc = markdown.Render(title, author, pages)
	}
	p.progress(progressRender)

	doc = markdown.FormatStructure(doc)
	p.progress(progressDone)
	p.status("转换完成")

	return &Result{Markdown: doc, Series: desc, Pages: pages}, nil
}

// Markdown runs the conversion and returns just the document.
func (p *Pipeline) Markdown(ctx context.Context) (string, error) {
	result, err := p.Run(ctx)
	if err != nil {
		return "", err
	}
	return result.Markdown, nil
}

// Outcome is delivered by Start when a background conversion finishes.
type Outcome struct {
	Result *Result
	Err    error
}

// Start runs the conversion in a goroutine and returns a channel that
// delivers the single outcome. Cancel ctx to abandon the run.
func (p *Pipeline) Start(ctx context.Context) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		result, err := p.Run(ctx)
		ch <- Outcome{Result: result, Err: err}
	}()
	return ch
}

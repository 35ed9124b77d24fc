// Package pic2md converts a series of RedNote (小红书) screenshots into a
// single Markdown document. Screenshots saved from the web client carry
// the series metadata in their filenames; pic2md resolves the full
// series from one selected file, runs each page through a cloud OCR
// backend, and reconstructs the recognized text into readable Markdown.
//
// Basic usage:
//
//	p := pic2md.Open("笔记标题_1_作者_来自小红书网页版.jpg").
//		WithService(ocr.Config{
//			Service:        "baidu",
//			BaiduAPIKey:    apiKey,
//			BaiduSecretKey: secretKey,
//		})
//	result, err := p.Run(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("out.md", []byte(result.Markdown), 0644)
//
// Progress and status callbacks hook the conversion for UIs:
//
//	p = p.OnProgress(func(pct int) { bar.Set(pct) }).
//		OnStatus(func(msg string) { log.Println(msg) })
package pic2md

// Must panics if err is non-nil, otherwise returns p. It allows
// chaining in programs where a bad configuration is fatal:
//
//	result := pic2md.Must(pic2md.Open(path).WithService(cfg).Run(ctx))
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

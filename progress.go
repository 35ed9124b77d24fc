package pic2md

// Progress milestones reported through OnProgress. Recognition is the
// slow half of a conversion and owns the range up to 50; the
// reconstruction stages take the rest.
const (
	progressRecognition = 50
	progressReconstruct = 75
	progressRender      = 90
	progressDone        = 100
)

func (p *Pipeline) progress(percent int) {
	if p.opts.onProgress != nil {
		p.opts.onProgress(percent)
	}
}

func (p *Pipeline) status(message string) {
	if p.opts.onStatus != nil {
		p.opts.onStatus(message)
	}
}

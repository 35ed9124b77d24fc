package pic2md

// pipelineOptions holds configuration for a conversion run.
type pipelineOptions struct {
	// mergePages joins paragraphs split across page boundaries instead
	// of keeping a marker between every pair of pages.
	mergePages bool

	// onProgress receives completion percentages from 0 to 100.
	onProgress func(percent int)

	// onStatus receives human-readable progress messages. They are in
	// Chinese, matching the documents being converted.
	onStatus func(message string)
}

// defaultOptions returns the default conversion options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{}
}

// clone creates a copy of pipelineOptions. Callback fields are shared;
// they are set, never mutated.
func (o pipelineOptions) clone() pipelineOptions {
	return pipelineOptions{
		mergePages: o.mergePages,
		onProgress: o.onProgress,
		onStatus:   o.onStatus,
	}
}

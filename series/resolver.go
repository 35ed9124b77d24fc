package series

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PageFile pairs an on-disk path with the page number parsed from its name.
type PageFile struct {
	Path string
	Page int
}

// Descriptor is the result of resolving one selected file into a series.
// Pages is sorted ascending by page number. MissingPages lists the page
// numbers absent from the inclusive [min, max] range of the series, and
// DuplicatePages lists page numbers that appear on more than one file.
type Descriptor struct {
	Key            Key
	Pages          []PageFile
	MissingPages   []int
	DuplicatePages []int
}

// Complete reports whether the series is contiguous and free of
// duplicate page numbers.
func (d Descriptor) Complete() bool {
	return len(d.MissingPages) == 0 && len(d.DuplicatePages) == 0
}

// Summary returns a short human-readable completeness report.
func (d Descriptor) Summary() string {
	if len(d.Pages) == 0 {
		return "没有文件"
	}
	if d.Complete() {
		return fmt.Sprintf("系列完整，共 %d 页", len(d.Pages))
	}
	var parts []string
	if len(d.MissingPages) > 0 {
		nums := make([]string, len(d.MissingPages))
		for i, n := range d.MissingPages {
			nums[i] = fmt.Sprintf("%d", n)
		}
		parts = append(parts, "缺少第 "+strings.Join(nums, "、")+" 页")
	}
	if len(d.DuplicatePages) > 0 {
		nums := make([]string, len(d.DuplicatePages))
		for i, n := range d.DuplicatePages {
			nums[i] = fmt.Sprintf("%d", n)
		}
		parts = append(parts, "第 "+strings.Join(nums, "、")+" 页重复")
	}
	return fmt.Sprintf("系列不完整：%s", strings.Join(parts, "；"))
}

// Resolve scans the directory containing selectedPath for files belonging
// to the same series and returns them ordered by page number.
//
// Two degraded cases return a single-page descriptor containing only the
// selected file: a filename outside the naming convention, and a
// directory that cannot be listed. Neither is an error; the caller still
// gets a usable one-page series.
func Resolve(selectedPath string) Descriptor {
	parsed, ok := Parse(filepath.Base(selectedPath))
	if !ok {
		return singleFile(selectedPath, Key{}, 1)
	}

	dir := filepath.Dir(selectedPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return singleFile(selectedPath, parsed.Key(), parsed.Page)
	}

	var pages []PageFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		p, ok := Parse(entry.Name())
		if !ok || p.Key() != parsed.Key() {
			continue
		}
		pages = append(pages, PageFile{
			Path: filepath.Join(dir, entry.Name()),
			Page: p.Page,
		})
	}

	// Stable sort keeps directory-listing order for duplicate page
	// numbers; they are reported, not dropped.
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Page < pages[j].Page })

	return Descriptor{
		Key:            parsed.Key(),
		Pages:          pages,
		MissingPages:   missingPages(pages),
		DuplicatePages: duplicatePages(pages),
	}
}

func singleFile(path string, key Key, page int) Descriptor {
	return Descriptor{
		Key:   key,
		Pages: []PageFile{{Path: path, Page: page}},
	}
}

// missingPages returns the page numbers absent from the inclusive
// [min, max] range covered by pages. Empty when the series is contiguous.
func missingPages(pages []PageFile) []int {
	if len(pages) == 0 {
		return nil
	}
	present := make(map[int]bool, len(pages))
	min, max := pages[0].Page, pages[0].Page
	for _, p := range pages {
		present[p.Page] = true
		if p.Page < min {
			min = p.Page
		}
		if p.Page > max {
			max = p.Page
		}
	}
	var missing []int
	for n := min; n <= max; n++ {
		if !present[n] {
			missing = append(missing, n)
		}
	}
	return missing
}

// duplicatePages returns the page numbers carried by more than one file,
// each listed once.
func duplicatePages(pages []PageFile) []int {
	seen := make(map[int]int, len(pages))
	for _, p := range pages {
		seen[p.Page]++
	}
	var dups []int
	for n, count := range seen {
		if count > 1 {
			dups = append(dups, n)
		}
	}
	sort.Ints(dups)
	return dups
}

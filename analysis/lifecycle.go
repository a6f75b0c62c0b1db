package analysis

import (
	"path/filepath"
	"sort"
)

// Boot-sequence files worth a lifecycle timeline.
var lifecycleFiles = map[string]bool{
	"SystemServer.java": true,
	"ZygoteInit.java":   true,
}

// Method names conventionally significant to the boot sequence.
var lifecycleMethods = map[string]bool{
	"main":                   true,
	"startBootstrapServices": true,
	"startCoreServices":      true,
	"startOtherServices":     true,
}

// LifecycleTarget reports whether the file is one of the boot-sequence
// targets a timeline is built for.
func LifecycleTarget(path string) bool {
	return lifecycleFiles[filepath.Base(path)]
}

// BuildLifecycleTimeline collects the file's well-known lifecycle methods,
// sorted ascending by line. Returns false for files outside the fixed
// target set.
func BuildLifecycleTimeline(path, className string, decls []MethodDecl) (*LifecycleTimeline, bool) {
	if !LifecycleTarget(path) {
		return nil, false
	}
	timeline := &LifecycleTimeline{File: path, ClassName: className}
	for _, d := range decls {
		if lifecycleMethods[d.Name] {
			timeline.Entries = append(timeline.Entries, LifecycleEntry{Method: d.Name, Line: d.Line})
		}
	}
	sort.Slice(timeline.Entries, func(i, j int) bool {
		return timeline.Entries[i].Line < timeline.Entries[j].Line
	})
	return timeline, true
}

package analysis

import "testing"

func TestLifecycleTarget(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"frameworks/base/services/java/com/android/server/SystemServer.java", true},
		{"ZygoteInit.java", true},
		{"PowerManagerService.java", false},
	}
	for _, tt := range tests {
		if got := LifecycleTarget(tt.path); got != tt.want {
			t.Errorf("LifecycleTarget(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestBuildLifecycleTimeline(t *testing.T) {
	decls := []MethodDecl{
		{MethodSummary: MethodSummary{Name: "startOtherServices", Line: 300}},
		{MethodSummary: MethodSummary{Name: "main", Line: 50}},
		{MethodSummary: MethodSummary{Name: "run", Line: 80}},
		{MethodSummary: MethodSummary{Name: "startBootstrapServices", Line: 120}},
		{MethodSummary: MethodSummary{Name: "startCoreServices", Line: 200}},
	}

	timeline, ok := BuildLifecycleTimeline("services/SystemServer.java", "SystemServer", decls)
	if !ok {
		t.Fatal("expected a timeline for SystemServer.java")
	}
	if timeline.ClassName != "SystemServer" {
		t.Errorf("class: got %q", timeline.ClassName)
	}

	want := []LifecycleEntry{
		{"main", 50},
		{"startBootstrapServices", 120},
		{"startCoreServices", 200},
		{"startOtherServices", 300},
	}
	if len(timeline.Entries) != len(want) {
		t.Fatalf("entries: got %v, want %v", timeline.Entries, want)
	}
	for i, entry := range timeline.Entries {
		if entry != want[i] {
			t.Errorf("entry %d: got %v, want %v", i, entry, want[i])
		}
	}
}

func TestBuildLifecycleTimelineRejectsOtherFiles(t *testing.T) {
	if _, ok := BuildLifecycleTimeline("Foo.java", "Foo", nil); ok {
		t.Error("expected no timeline for a non-target file")
	}
}

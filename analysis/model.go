// Package analysis derives structural and behavioral facts from Java source
// text: member summaries, caller/callee relationships, system-service and
// boot-lifecycle facts, and lock-hazard warnings. It consumes the generic
// tree from package syntax and never parses Java grammar itself.
package analysis

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityPackage   Visibility = "package"
)

// FieldSummary describes one declared field. A multi-variable declaration
// yields one summary per variable, all sharing type, visibility and static.
type FieldSummary struct {
	Name       string
	Type       string
	Visibility Visibility
	IsStatic   bool
	Line       int
}

// MethodSummary describes one declared method. Constructors are excluded.
type MethodSummary struct {
	Name       string
	ParamCount int
	Visibility Visibility
	IsStatic   bool
	Line       int
}

// MethodDecl is a MethodSummary plus the offsets needed for call-graph
// resolution. HasBody is false for abstract/native declarations, in which
// case both body offsets are zero.
type MethodDecl struct {
	MethodSummary
	Signature string
	Start     int
	End       int
	HasBody   bool
	BodyStart int
	BodyEnd   int
}

// MethodInvocation is an unresolved call site: a name and argument count at
// an offset. Resolution to a declaration happens in the call-graph builder.
type MethodInvocation struct {
	Name     string
	ArgCount int
	Offset   int
	Line     int
}

// MethodRef identifies a method well enough for display and navigation.
type MethodRef struct {
	ClassName  string
	MethodName string
	File       string
	Line       int
}

// MethodCallGraph is the single-file caller/callee view rooted at one
// method. Built fresh per query, never cached.
type MethodCallGraph struct {
	Label   string
	Callers []MethodRef
	Callees []MethodRef
}

// ClassSummary is the structural overview of one file's primary class.
// InnerClasses holds every class name found after the first.
type ClassSummary struct {
	ClassName    string
	PackageName  string
	Fields       []FieldSummary
	Methods      []MethodSummary
	InnerClasses []string
}

// RegisteredService is a binder registration call site with the extracted
// service name ("<unknown>" when no quoted literal was found on that line).
type RegisteredService struct {
	Name string
	Line int
}

// SystemServiceSummary captures lifecycle facts for a class extending
// SystemService. OnStartLine is 0 when the class declares no onStart.
type SystemServiceSummary struct {
	ClassName     string
	OnStartLine   int
	BootPhaseLine []int
	Services      []RegisteredService
}

// LifecycleEntry pairs a well-known lifecycle method with its line.
type LifecycleEntry struct {
	Method string
	Line   int
}

// LifecycleTimeline lists a boot-sequence file's lifecycle methods sorted
// ascending by line.
type LifecycleTimeline struct {
	File      string
	ClassName string
	Entries   []LifecycleEntry
}

// ConcurrencyWarning flags a hazardous pattern inside a synchronized block.
type ConcurrencyWarning struct {
	Start   int
	End     int
	Line    int
	Message string
}

// FileAnalysis is the memoized unit of work: everything the summarizer and
// invocation scanner derive from one file. SystemService is nil unless the
// primary class matches the SystemService heuristic.
type FileAnalysis struct {
	Summary       ClassSummary
	Decls         []MethodDecl
	Invocations   []MethodInvocation
	SystemService *SystemServiceSummary
}

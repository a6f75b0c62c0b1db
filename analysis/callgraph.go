package analysis

import "fmt"

// BuildCallGraph resolves the caller/callee view for the method enclosing
// cursor. Resolution is single-file and heuristic: invocations match
// declarations by exact name and argument count, with no overload or
// inheritance awareness. Returns false when no declaration contains the
// cursor.
func BuildCallGraph(decls []MethodDecl, invocations []MethodInvocation, className, file string, cursor int) (*MethodCallGraph, bool) {
	current, ok := enclosingDecl(decls, cursor)
	if !ok {
		return nil, false
	}

	graph := &MethodCallGraph{
		Label: fmt.Sprintf("%s.%s(%d)", className, current.Name, current.ParamCount),
	}

	bodyStart, bodyEnd := declRange(current)
	for _, inv := range invocations {
		if inv.Offset < bodyStart || inv.Offset > bodyEnd {
			continue
		}
		callee, ok := findDecl(decls, inv.Name, inv.ArgCount)
		if !ok {
			continue // unresolved call sites are dropped, not reported
		}
		graph.Callees = append(graph.Callees, MethodRef{
			ClassName:  className,
			MethodName: callee.Name,
			File:       file,
			Line:       callee.Line,
		})
	}

	seen := map[string]bool{}
	for _, inv := range invocations {
		if inv.Name != current.Name || inv.ArgCount != current.ParamCount {
			continue
		}
		if inv.Offset >= current.Start && inv.Offset <= current.End {
			continue // inside the target method itself
		}
		caller, ok := enclosingBody(decls, inv.Offset)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%s:%d", caller.Name, caller.Line)
		if seen[key] {
			continue // report each caller once, first occurrence wins
		}
		seen[key] = true
		graph.Callers = append(graph.Callers, MethodRef{
			ClassName:  className,
			MethodName: caller.Name,
			File:       file,
			Line:       caller.Line,
		})
	}

	return graph, true
}

// enclosingDecl returns the first declaration whose overall range contains
// the offset.
func enclosingDecl(decls []MethodDecl, offset int) (MethodDecl, bool) {
	for _, d := range decls {
		if offset >= d.Start && offset <= d.End {
			return d, true
		}
	}
	return MethodDecl{}, false
}

// enclosingBody returns the declaration whose body range contains the
// offset, falling back to the overall range for bodiless declarations.
func enclosingBody(decls []MethodDecl, offset int) (MethodDecl, bool) {
	for _, d := range decls {
		start, end := declRange(d)
		if offset >= start && offset <= end {
			return d, true
		}
	}
	return MethodDecl{}, false
}

func declRange(d MethodDecl) (int, int) {
	if d.HasBody {
		return d.BodyStart, d.BodyEnd
	}
	return d.Start, d.End
}

func findDecl(decls []MethodDecl, name string, argCount int) (MethodDecl, bool) {
	for _, d := range decls {
		if d.Name == name && d.ParamCount == argCount {
			return d, true
		}
	}
	return MethodDecl{}, false
}

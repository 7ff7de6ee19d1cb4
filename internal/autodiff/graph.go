package autodiff

// frame is a pending node in an iterative depth-first traversal.
// next is the index of the operand to descend into next.
type frame struct {
	node *Value
	next int
}

// TopologicalOrder returns every Value reachable from terminal through
// operand edges, each exactly once, with operands before the values that
// use them. terminal is always last.
//
// The traversal is a depth-first post-order that descends into operands in
// argument order, so the result is deterministic for a given graph.
// It uses an explicit stack; graph depth is not limited by the goroutine stack.
func TopologicalOrder(terminal *Value) []*Value {
	order := make([]*Value, 0, 16)
	visited := map[*Value]struct{}{terminal: {}}
	stack := []frame{{node: terminal}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.operands) {
			operand := top.node.operands[top.next]
			top.next++
			if _, seen := visited[operand]; !seen {
				visited[operand] = struct{}{}
				stack = append(stack, frame{node: operand})
			}
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}

	return order
}

// Edge is a directed operand edge: From was read to compute To.
type Edge struct {
	From *Value
	To   *Value
}

// Walk visits every Value reachable from terminal exactly once in
// depth-first pre-order, terminal first, descending into operands in
// argument order. If visit returns false the walk stops.
func Walk(terminal *Value, visit func(node *Value) bool) {
	visited := make(map[*Value]struct{})
	stack := []*Value{terminal}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[node]; seen {
			continue
		}
		visited[node] = struct{}{}
		if !visit(node) {
			return
		}
		// Push in reverse so operands pop in argument order.
		for i := len(node.operands) - 1; i >= 0; i-- {
			if _, seen := visited[node.operands[i]]; !seen {
				stack = append(stack, node.operands[i])
			}
		}
	}
}

// Edges returns the distinct operand edges of the graph rooted at terminal.
// A Value used twice by the same consumer (x*x) contributes one edge.
func Edges(terminal *Value) []Edge {
	var edges []Edge
	seen := make(map[Edge]struct{})
	for _, node := range TopologicalOrder(terminal) {
		for _, operand := range node.operands {
			e := Edge{From: operand, To: node}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

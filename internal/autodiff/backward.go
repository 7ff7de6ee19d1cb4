package autodiff

// Backward computes ∂v/∂n for every Value n reachable from v and adds it
// to n's gradient.
//
// Algorithm:
//  1. Seed v's gradient with 1 (∂v/∂v)
//  2. Order v's ancestry with TopologicalOrder
//  3. Walk that order in reverse (v first); for each node push
//     node.grad * localGrad onto each operand
//
// Reverse topological order guarantees a node's gradient is complete
// before it is propagated: every consumer of the node is visited first.
//
// Gradients of non-terminal nodes accumulate across calls. Use ZeroGrad
// between passes when fresh gradients are needed.
func (v *Value) Backward() {
	order := TopologicalOrder(v)

	v.grad = 1
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		for j, operand := range node.operands {
			operand.grad += node.grad * node.localGrads[j]
		}
	}
}

// ZeroGrad resets the gradient of every Value reachable from v, v included.
func (v *Value) ZeroGrad() {
	for _, node := range TopologicalOrder(v) {
		node.grad = 0
	}
}

package framegraph

import "github.com/vkforge/framegraph/internal/bitvec"

// edge is a directed reader -> writer dependency: reader must be
// executed after writer.
type edge struct{ from, to NodeIndex }

// Compile orders nodes into execution order: every pass reachable
// from root via read->writer edges, output-before-input (spec §4.2).
// It returns ErrCycle if the reachable subgraph is not a DAG.
func Compile(nodes []PassNode, root NodeIndex) ([]NodeIndex, error) {
	n := len(nodes)

	// 1. Build inputs[handle] -> readers, outputs[handle] -> writers.
	inputs := make(map[Handle][]NodeIndex)
	outputs := make(map[Handle][]NodeIndex)
	for i := range nodes {
		idx := NodeIndex(i)
		for _, h := range nodes[i].readHandles() {
			inputs[h] = append(inputs[h], idx)
		}
		for _, h := range nodes[i].writeHandles() {
			outputs[h] = append(outputs[h], idx)
		}
	}

	// 2. reader -> writer edges, deduplicated, self-edges elided.
	adj := make([][]NodeIndex, n)
	seen := make(map[edge]bool)
	for h, readers := range inputs {
		writers := outputs[h]
		for _, r := range readers {
			for _, w := range writers {
				if w == r {
					continue
				}
				e := edge{r, w}
				if seen[e] {
					continue
				}
				seen[e] = true
				adj[r] = append(adj[r], w)
			}
		}
	}

	// 3. Mark every node reachable from root via DFS.
	var reachable bitvec.V[uint64]
	reachable.Grow((n + 63) / 64)
	var stack bitvec.V[uint64]
	stack.Grow((n + 63) / 64)

	var order []NodeIndex
	var visit func(idx NodeIndex) error
	visit = func(idx NodeIndex) error {
		if reachable.IsSet(int(idx)) {
			return nil
		}
		if stack.IsSet(int(idx)) {
			return ErrCycle
		}
		stack.Set(int(idx))
		for _, w := range adj[idx] {
			if err := visit(w); err != nil {
				return err
			}
		}
		stack.Unset(int(idx))
		reachable.Set(int(idx))
		// Post-order: a node is appended after every node it
		// depends on (its writers), which already yields
		// output-before-input order.
		order = append(order, idx)
		return nil
	}
	if int(root) < 0 || int(root) >= n {
		return nil, newCompileErr("root node index out of range")
	}
	if err := visit(root); err != nil {
		return nil, err
	}

	// order is already output-before-input: visit appends a node
	// only after every node it depends on (its writers) has been
	// appended, which is the execution order spec §4.2 step 4
	// describes as "the natural Kahn/DFS order reversed once". Our
	// adjacency points from consumer to producer, the opposite of
	// the classic formulation, so the reversal is already folded
	// into the post-order walk itself.
	return order, nil
}

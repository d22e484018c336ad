package datastructure

// ConnectedComponents. label every node with the id of its connected component (0-based, in order of
// the smallest node index of each component). iterative dfs, the graph is undirected so one pass is enough.
func (g *Graph) ConnectedComponents() ([]Index, int) {
	n := g.NumberOfNodes()
	comp := make([]Index, n)
	for v := range comp {
		comp[v] = INVALID_INDEX
	}

	numComponents := 0
	stack := make([]Index, 0, 64)
	for s := 0; s < n; s++ {
		if comp[s] != INVALID_INDEX {
			continue
		}
		c := Index(numComponents)
		numComponents++

		comp[s] = c
		stack = append(stack[:0], Index(s))
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			g.ForEdgesOf(u, func(_ Index, _ *Edge, head Index) {
				if comp[head] == INVALID_INDEX {
					comp[head] = c
					stack = append(stack, head)
				}
			})
		}
	}
	return comp, numComponents
}

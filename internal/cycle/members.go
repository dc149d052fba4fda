package cycle

// Members reports, per account index, whether the account lies on a directed
// cycle: it belongs to a strongly connected component with more than one
// account, or it has an edge to itself.
//
// Components come from Tarjan's algorithm, run iteratively.
func Members(g Graph) []bool {
	n := g.Len()
	member := make([]bool, n)
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var (
		counter int
		comp    []int
		calls   []frame
	)
	visit := func(v int) {
		index[v] = counter
		low[v] = counter
		counter++
		comp = append(comp, v)
		onStack[v] = true
		calls = append(calls, frame{node: v})
	}

	for root := 0; root < n; root++ {
		if index[root] != -1 {
			continue
		}
		visit(root)

		for len(calls) > 0 {
			top := &calls[len(calls)-1]
			u := top.node
			edges := g.Edges(u)
			if top.next < len(edges) {
				w := edges[top.next].To
				top.next++
				if w == u {
					member[u] = true
				}
				if index[w] == -1 {
					visit(w)
				} else if onStack[w] {
					low[u] = min(low[u], index[w])
				}
				continue
			}

			calls = calls[:len(calls)-1]
			if len(calls) > 0 {
				p := calls[len(calls)-1].node
				low[p] = min(low[p], low[u])
			}
			if low[u] != index[u] {
				continue
			}

			// u roots a component; pop it.
			k := len(comp) - 1
			for comp[k] != u {
				k--
			}
			scc := comp[k:]
			comp = comp[:k]
			for _, v := range scc {
				onStack[v] = false
				if len(scc) > 1 {
					member[v] = true
				}
			}
		}
	}
	return member
}

package parser

const arenaSlabSize = 256

// nodeArena hands out nodes from fixed-size slabs. Nodes allocated during
// a failed speculation are released in bulk by resetting to a mark, which
// keeps the speculative parse free of tree side effects.
type nodeArena struct {
	slabs [][]Node
	used  int
}

type arenaMark int

func (a *nodeArena) alloc() *Node {
	slab, off := a.used/arenaSlabSize, a.used%arenaSlabSize
	if slab == len(a.slabs) {
		a.slabs = append(a.slabs, make([]Node, arenaSlabSize))
	}
	a.used++
	return &a.slabs[slab][off]
}

func (a *nodeArena) mark() arenaMark {
	return arenaMark(a.used)
}

// release zeroes and reclaims every node allocated after m.
func (a *nodeArena) release(m arenaMark) {
	for i := int(m); i < a.used; i++ {
		a.slabs[i/arenaSlabSize][i%arenaSlabSize] = Node{}
	}
	a.used = int(m)
}

func (a *nodeArena) len() int {
	return a.used
}

// clone deep-copies n into the arena.
func (a *nodeArena) clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := a.alloc()
	*c = *n
	c.Children = nil
	for _, child := range n.Children {
		c.Children = append(c.Children, a.clone(child))
	}
	return c
}

package framing

// FeatureFinder looks for a refactoring pattern introduced by an edit.
type FeatureFinder interface {
	FeatureFound(previous, current *Snapshot) bool
}

// Match describes a framing if: If reproduces Length statements of the
// previous version's top level, starting at PreviousStart, as the body
// statements starting at BodyStart.
type Match struct {
	If            *IfNode
	BodyStart     int
	PreviousStart int
	Length        int
}

// Span returns the token span of the framing if in the current snapshot.
func (m *Match) Span() Span {
	return m.If.Span
}

// FramingIfFinder detects an edit that wraps existing top-level statements in
// a newly added if statement.
type FramingIfFinder struct{}

func (f FramingIfFinder) FeatureFound(previous, current *Snapshot) bool {
	_, found := f.Find(previous, current)
	return found
}

// Find returns the first framing if of current relative to previous. A nil
// snapshot, for instance after a failed parse, never yields a match.
func (f FramingIfFinder) Find(previous, current *Snapshot) (*Match, bool) {
	if previous == nil || current == nil {
		return nil, false
	}

	before := previous.Statements()
	if len(before) == 0 {
		return nil, false
	}

	for _, node := range addedStatements(before, current.Statements()) {
		for _, ifNode := range ifStatements(node, nil) {
			if m := matchBody(ifNode, before); m != nil {
				return m, true
			}
		}
	}

	return nil, false
}

// FindFramingIf is FramingIfFinder.Find.
func FindFramingIf(previous, current *Snapshot) (*Match, bool) {
	return FramingIfFinder{}.Find(previous, current)
}

// addedStatements returns the statements of after that are not accounted for
// by before. Each statement of before can account for one equal statement of
// after, taken greedily in order.
func addedStatements(before, after []ExecNode) []ExecNode {
	used := make([]bool, len(before))

	var added []ExecNode
	for _, node := range after {
		matched := false
		for i, old := range before {
			if !used[i] && Equal(node, old) {
				used[i] = true
				matched = true
				break
			}
		}

		if !matched {
			added = append(added, node)
		}
	}

	return added
}

// ifStatements collects the if statements in node in source order,
// including nested ones.
func ifStatements(node ExecNode, acc []*IfNode) []*IfNode {
	switch n := node.(type) {
	case *IfNode:
		acc = append(acc, n)
		return ifStatements(n.Body, acc)
	case *BlockNode:
		for _, stmt := range n.Statements {
			acc = ifStatements(stmt, acc)
		}
	}

	return acc
}

// matchBody finds the longest run of the if body that equals a run of
// before. A body that is not a block counts as a one-statement body.
func matchBody(ifNode *IfNode, before []ExecNode) *Match {
	body := []ExecNode{ifNode.Body}
	if block, ok := ifNode.Body.(*BlockNode); ok {
		body = block.Statements
	}

	var best *Match
	for i := range body {
		for j := range before {
			n := 0
			for i+n < len(body) && j+n < len(before) && Equal(body[i+n], before[j+n]) {
				n++
			}

			if n > 0 && (best == nil || n > best.Length) {
				best = &Match{
					If:            ifNode,
					BodyStart:     i,
					PreviousStart: j,
					Length:        n,
				}
			}
		}
	}

	return best
}

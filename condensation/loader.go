package condensation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadPrefix reads a condensation from three whitespace-delimited files
// sharing a common path prefix, mirroring the shape of the external loader
// the original tool expected at INPUT_PREFIX:
//
//	<prefix>.nodes      — "N" followed by N lines "cid isSpatial [x y]"
//	<prefix>.components — "M" followed by M lines "indegree isSpatial nMembers m1 m2 ... mk"
//	<prefix>.children   — M lines (component ids implicit, in order) "k c1 c2 ... ck"
//
// Building the condensation (SCC contraction) itself is out of scope: these
// files are assumed to already hold its output. Any structural
// inconsistency (bad counts, out-of-range ids, malformed tokens) is
// reported as ErrCorruptInput.
func LoadPrefix(prefix string) (*View, error) {
	nodes, err := loadNodes(prefix + ".nodes")
	if err != nil {
		return nil, err
	}

	components, err := loadComponents(prefix + ".components")
	if err != nil {
		return nil, err
	}

	children, err := loadChildren(prefix+".children", len(components))
	if err != nil {
		return nil, err
	}

	for _, n := range nodes {
		if int(n.CID) < 0 || int(n.CID) >= len(components) {
			return nil, fmt.Errorf("%w: node cid %d out of range [0,%d)", ErrCorruptInput, n.CID, len(components))
		}
	}
	for i, c := range components {
		for _, mid := range c.Members {
			if int(mid) < 0 || int(mid) >= len(nodes) {
				return nil, fmt.Errorf("%w: component %d: member id %d out of range [0,%d)", ErrCorruptInput, i, mid, len(nodes))
			}
		}
	}

	return NewView(nodes, components, children), nil
}

func loadNodes(path string) ([]Node, error) {
	s, f, err := newTokenScanner(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n, err := s.nextInt()
	if err != nil {
		return nil, fmt.Errorf("%w: reading node count: %v", ErrCorruptInput, err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative node count %d", ErrCorruptInput, n)
	}

	nodes := make([]Node, n)
	for i := 0; i < n; i++ {
		cid, err := s.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: cid: %v", ErrCorruptInput, i, err)
		}
		isSpatial, err := s.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: isSpatial: %v", ErrCorruptInput, i, err)
		}

		node := Node{CID: ComponentID(cid), IsSpatial: isSpatial != 0}
		if node.IsSpatial {
			x, err := s.nextFloat()
			if err != nil {
				return nil, fmt.Errorf("%w: node %d: x: %v", ErrCorruptInput, i, err)
			}
			y, err := s.nextFloat()
			if err != nil {
				return nil, fmt.Errorf("%w: node %d: y: %v", ErrCorruptInput, i, err)
			}
			node.X, node.Y = float32(x), float32(y)
		}
		nodes[i] = node
	}

	return nodes, nil
}

func loadComponents(path string) ([]Component, error) {
	s, f, err := newTokenScanner(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := s.nextInt()
	if err != nil {
		return nil, fmt.Errorf("%w: reading component count: %v", ErrCorruptInput, err)
	}
	if m < 0 {
		return nil, fmt.Errorf("%w: negative component count %d", ErrCorruptInput, m)
	}

	components := make([]Component, m)
	for i := 0; i < m; i++ {
		indegree, err := s.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w: component %d: indegree: %v", ErrCorruptInput, i, err)
		}
		isSpatial, err := s.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w: component %d: isSpatial: %v", ErrCorruptInput, i, err)
		}
		nMembers, err := s.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w: component %d: member count: %v", ErrCorruptInput, i, err)
		}
		if nMembers < 0 {
			return nil, fmt.Errorf("%w: component %d: negative member count %d", ErrCorruptInput, i, nMembers)
		}

		members := make([]NodeID, nMembers)
		for j := 0; j < nMembers; j++ {
			mid, err := s.nextInt()
			if err != nil {
				return nil, fmt.Errorf("%w: component %d: member %d: %v", ErrCorruptInput, i, j, err)
			}
			members[j] = NodeID(mid)
		}

		if isSpatial != 0 && nMembers != 1 {
			return nil, fmt.Errorf("%w: component %d: spatial component must have exactly one member, got %d", ErrCorruptInput, i, nMembers)
		}

		components[i] = Component{Indegree: indegree, IsSpatial: isSpatial != 0, Members: members}
	}

	return components, nil
}

func loadChildren(path string, m int) ([][]ComponentID, error) {
	s, f, err := newTokenScanner(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	children := make([][]ComponentID, m)
	for i := 0; i < m; i++ {
		k, err := s.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w: component %d: child count: %v", ErrCorruptInput, i, err)
		}
		if k < 0 {
			return nil, fmt.Errorf("%w: component %d: negative child count %d", ErrCorruptInput, i, k)
		}

		kids := make([]ComponentID, k)
		for j := 0; j < k; j++ {
			cid, err := s.nextInt()
			if err != nil {
				return nil, fmt.Errorf("%w: component %d: child %d: %v", ErrCorruptInput, i, j, err)
			}
			if cid < 0 || cid >= m {
				return nil, fmt.Errorf("%w: component %d: child id %d out of range [0,%d)", ErrCorruptInput, i, cid, m)
			}
			kids[j] = ComponentID(cid)
		}
		children[i] = kids
	}

	return children, nil
}

// tokenScanner reads whitespace-delimited tokens across newlines, the Go
// equivalent of the original tool's `stream >> value` parsing style.
type tokenScanner struct {
	sc *bufio.Scanner
}

func newTokenScanner(path string) (*tokenScanner, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorruptInput, err)
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	return &tokenScanner{sc: sc}, f, nil
}

func (s *tokenScanner) next() (string, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return s.sc.Text(), nil
}

func (s *tokenScanner) nextInt() (int, error) {
	tok, err := s.next()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}

func (s *tokenScanner) nextFloat() (float64, error) {
	tok, err := s.next()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(tok, 64)
}

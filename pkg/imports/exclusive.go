package imports

// Exclusivity answers whether two statements can never both execute in a
// single run, such as the bodies of an if and its else branch or a try body
// and its except ImportError fallback.
type Exclusivity interface {
	AreExclusive(a, b StmtID) bool
}

// ExclusivePairs is an Exclusivity backed by an explicit, symmetric list of
// statement pairs.
type ExclusivePairs map[[2]StmtID]struct{}

// NewExclusivePairs builds the relation from pairs.
func NewExclusivePairs(pairs ...[2]StmtID) ExclusivePairs {
	p := make(ExclusivePairs, len(pairs))
	for _, pair := range pairs {
		p[order(pair[0], pair[1])] = struct{}{}
	}
	return p
}

// AreExclusive implements Exclusivity.
func (p ExclusivePairs) AreExclusive(a, b StmtID) bool {
	_, ok := p[order(a, b)]
	return ok
}

func order(a, b StmtID) [2]StmtID {
	if a > b {
		a, b = b, a
	}
	return [2]StmtID{a, b}
}

// NeverExclusive reports every pair as able to run together.
type NeverExclusive struct{}

// AreExclusive implements Exclusivity.
func (NeverExclusive) AreExclusive(StmtID, StmtID) bool { return false }

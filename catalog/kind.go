package catalog

type Kind int

const (
	GroupKind Kind = iota
	CollectionKind
	DirectoryKind
	TableKind
	ParameterKind
	SearchKind
	TableCommentKind
	ParameterCommentKind

	numKinds
)

func Kinds() []Kind {
	res := make([]Kind, numKinds)
	for i := range res {
		res[i] = Kind(i)
	}
	return res
}

func (k Kind) String() string {
	switch k {
	case GroupKind:
		return "Group"
	case CollectionKind:
		return "Collection"
	case DirectoryKind:
		return "Directory"
	case TableKind:
		return "Table"
	case ParameterKind:
		return "Parameter"
	case SearchKind:
		return "Search"
	case TableCommentKind:
		return "TableComment"
	case ParameterCommentKind:
		return "ParameterComment"
	default:
		return "Unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// CanContain reports whether a node of kind parent may hold a direct child
// of kind child.
func CanContain(parent, child Kind) bool {
	switch parent {
	case GroupKind:
		return child == GroupKind || child == CollectionKind
	case CollectionKind:
		return child == DirectoryKind
	case DirectoryKind:
		return child == DirectoryKind || child == TableKind
	case TableKind:
		return child == ParameterKind || child == SearchKind || child == TableCommentKind
	case ParameterKind:
		return child == ParameterCommentKind
	case SearchKind, TableCommentKind, ParameterCommentKind:
		return false
	default:
		return false
	}
}

// MayContain reports whether a node of kind ancestor may hold a descendant
// of kind desc at any depth.
func MayContain(ancestor, desc Kind) bool {
	return reach[ancestor][desc]
}

var reach [numKinds][numKinds]bool

func init() {
	for a := range numKinds {
		for c := range numKinds {
			reach[a][c] = CanContain(a, c)
		}
	}
	// transitive closure; the kind graph is tiny.
	for m := range numKinds {
		for a := range numKinds {
			for c := range numKinds {
				if reach[a][m] && reach[m][c] {
					reach[a][c] = true
				}
			}
		}
	}
}

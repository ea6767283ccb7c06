package catalog

import "fmt"

// ParameterType classifies the values of a Table column.
type ParameterType int

const (
	EmptyType ParameterType = iota
	IntegerType
	FloatType
	StringType
	URLType
	ListType
	RangeType
	IUnitsType
	FUnitsType
)

func ParameterTypes() []ParameterType {
	return []ParameterType{
		EmptyType, IntegerType, FloatType, StringType, URLType,
		ListType, RangeType, IUnitsType, FUnitsType,
	}
}

func (t ParameterType) String() string {
	switch t {
	case EmptyType:
		return "Empty"
	case IntegerType:
		return "Integer"
	case FloatType:
		return "Float"
	case StringType:
		return "String"
	case URLType:
		return "URL"
	case ListType:
		return "List"
	case RangeType:
		return "Range"
	case IUnitsType:
		return "IUnits"
	case FUnitsType:
		return "FUnits"
	default:
		return fmt.Sprintf("ParameterType(%d)", int(t))
	}
}

func ParseParameterType(s string) (ParameterType, error) {
	for _, t := range ParameterTypes() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown type_name %q", ErrTypeMismatch, s)
}

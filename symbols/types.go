package symbols

// typeSizes is the fixed table of scalar types and their size in bytes.
var typeSizes = map[string]int{
	"char": 1,
	"int":  2,
	"long": 4,
}

// SizeOf reports the size in bytes of the named type.
func SizeOf(typeName string) (int, error) {
	size, ok := typeSizes[typeName]
	if !ok {
		return 0, newSymbolErrorF(unknownType, "unknown type '%s'", typeName)
	}
	return size, nil
}

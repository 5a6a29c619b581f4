package analyze

func IsValidBasic(name string) bool {
	return name == "int" || name == "bool"
}

var reserveds = map[string]bool{
	"program":      true,
	"endprogram":   true,
	"vars":         true,
	"endvars":      true,
	"int":          true,
	"bool":         true,
	"array":        true,
	"of":           true,
	"struct":       true,
	"endstruct":    true,
	"procedure":    true,
	"endprocedure": true,
	"function":     true,
	"endfunction":  true,
	"return":       true,
	"val":          true,
	"ref":          true,
	"if":           true,
	"then":         true,
	"else":         true,
	"endif":        true,
	"while":        true,
	"do":           true,
	"endwhile":     true,
	"read":         true,
	"write":        true,
	"writeln":      true,
	"and":          true,
	"or":           true,
	"not":          true,
	"true":         true,
	"false":        true,
}

func IsReserved(id string) bool {
	_, ok := reserveds[id]
	return ok
}

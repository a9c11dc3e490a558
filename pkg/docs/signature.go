package docs

import (
	"strings"

	"github.com/platinummonkey/apiman/pkg/schema"
)

// VoidType is the return type shown for callables that declare none
const VoidType = "Void"

// Signature renders the one-line signature of an entry.
//
//	pi : Num
//	abs : func(x: Int -> Int)
//	now : func(-> Moment)
func Signature(entry *schema.Entry) string {
	if entry.Kind() == schema.KindValue {
		return entry.Name + " : " + entry.Type
	}

	returnType := VoidType
	if entry.Return != nil && entry.Return.Type != "" {
		returnType = entry.Return.Type
	}

	var b strings.Builder
	b.WriteString(entry.Name)
	b.WriteString(" : func(")
	if len(entry.Args) > 0 {
		for i, arg := range entry.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(argSignature(arg))
		}
		b.WriteString(" ")
	}
	b.WriteString("-> ")
	b.WriteString(returnType)
	b.WriteString(")")
	return b.String()
}

func argSignature(arg schema.Arg) string {
	sig := arg.Name
	if arg.Type != "" {
		sig += ": " + arg.Type
	}
	if arg.HasDefault {
		sig += " = " + arg.Default
	}
	return sig
}

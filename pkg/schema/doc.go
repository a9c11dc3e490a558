// Package schema holds the API description model consumed by the renderers.
//
// # Overview
//
// An API description is a YAML mapping from entry name to entry body. Names
// without a dot are builtins; names of the form Type.method are methods owned
// by Type.
//
//	abs:
//	  short: absolute value
//	  description: Returns the absolute value of a number.
//	  args:
//	    x:
//	      type: Int
//	      description: The number.
//	  return:
//	    type: Int
//	    description: The absolute value of `x`.
//
// An entry carrying a top-level type is a value; every other entry is a
// callable. Argument order is the order of the args mapping in the source.
//
// # Loading
//
// Several files may be supplied; their contents are concatenated in argument
// order and parsed as one document:
//
//	doc, err := schema.Load(ctx, []string{"api/builtins.yaml", "api/text.yaml"}, os.Stdin)
//
// With no paths the document is read from the given reader.
package schema

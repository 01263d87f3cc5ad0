// Package validation checks container configuration values with
// pipe-separated rule strings.
//
// # Usage
//
//	v := validation.Make(map[string]string{
//	    "setter": "__onConstruct",
//	}, validation.Rules{
//	    "setter": "required|identifier|max:128",
//	})
//
//	if v.Fails() {
//	    return v.Errors() // *Errors implements error
//	}
//
// # Rules
//
//	required       non-blank
//	identifier     letters, digits and underscores, not starting with a digit
//	qualified      identifier that may also contain . - / and \ (package paths)
//	max:n          at most n characters
//	not_in:a,b     not one of the listed values
//	different:f    differs from field f
//	nullable       stop checking when empty
package validation

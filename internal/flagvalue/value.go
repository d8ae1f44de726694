// Package flagvalue provides the flag.Value types
// behind fixedfile's command line:
// repeatable flags, byte-valued flags, and the -debug switch.
package flagvalue

import "flag"

// Getter constrains PT to be *T implementing flag.Getter,
// so that [List] can create new elements with Set.
type Getter[T any] interface {
	*T
	flag.Getter
}

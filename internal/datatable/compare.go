package datatable

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders cell values of mixed types.
//
// Numbers compare numerically, strings by locale collation, times
// chronologically. Any other pair (nil, structs, a number against a
// string) compares the JSON encodings of both values.
//
// A Comparator is not safe for concurrent use.
type Comparator struct {
	collator *collate.Collator
}

// NewComparator returns a comparator collating strings for tag.
func NewComparator(tag language.Tag) *Comparator {
	return &Comparator{collator: collate.New(tag)}
}

// Compare orders a and b with an en-US comparator. Use a Comparator for
// repeated comparisons.
func Compare(a, b any) int {
	return NewComparator(language.AmericanEnglish).Compare(a, b)
}

// Compare returns a negative number when a sorts before b, zero when they
// are equal, and a positive number otherwise.
func (c *Comparator) Compare(a, b any) int {
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return x.compare(y)
		}
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return c.compareStrings(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}

	return c.compareStrings(serialize(a), serialize(b))
}

func (c *Comparator) compareStrings(a, b string) int {
	if r := c.collator.CompareString(a, b); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

type numberKind int

const (
	signed numberKind = iota
	unsigned
	float
)

// numeric holds a number in the widest value of its kind so integers above
// 2^53 keep their precision.
type numeric struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

func number(v any) (numeric, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numeric{kind: signed, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return numeric{kind: unsigned, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return numeric{kind: float, f: rv.Float()}, true
	default:
		return numeric{}, false
	}
}

func (n numeric) asFloat() float64 {
	switch n.kind {
	case signed:
		return float64(n.i)
	case unsigned:
		return float64(n.u)
	default:
		return n.f
	}
}

func (n numeric) compare(o numeric) int {
	switch {
	case n.kind == float || o.kind == float:
		return cmp.Compare(n.asFloat(), o.asFloat())
	case n.kind == signed && o.kind == signed:
		return cmp.Compare(n.i, o.i)
	case n.kind == unsigned && o.kind == unsigned:
		return cmp.Compare(n.u, o.u)
	case n.kind == signed:
		if n.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(n.i), o.u)
	default:
		if o.i < 0 {
			return 1
		}
		return cmp.Compare(n.u, uint64(o.i))
	}
}

func serialize(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

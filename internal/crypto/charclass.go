package crypto

import (
	"fmt"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!@%$&*()-_=+[]{};:,.?/<>"
)

// CharClass is a category of characters a random password may draw from.
type CharClass uint8

// Classes are declared in canonical alphabet order.
const (
	Lowercase CharClass = 1 << iota
	Uppercase
	Numeric
	Symbol
)

// AllClasses lists every character class in canonical order.
var AllClasses = []CharClass{Lowercase, Uppercase, Numeric, Symbol}

// Chars returns the characters belonging to the class.
func (c CharClass) Chars() string {
	switch c {
	case Lowercase:
		return lowercaseChars
	case Uppercase:
		return uppercaseChars
	case Numeric:
		return numberChars
	case Symbol:
		return symbolChars
	}
	return ""
}

func (c CharClass) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Numeric:
		return "numbers"
	case Symbol:
		return "symbols"
	}
	return fmt.Sprintf("CharClass(%d)", uint8(c))
}

// ParseCharClass maps a class name to its CharClass.
func ParseCharClass(name string) (CharClass, error) {
	for _, c := range AllClasses {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
}

// ClassSet is a set of character classes.
type ClassSet uint8

// NewClassSet returns a set holding the given classes.
func NewClassSet(classes ...CharClass) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s |= ClassSet(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s ClassSet) Has(c CharClass) bool {
	return s&ClassSet(c) != 0
}

// Classes returns the members of the set in canonical order.
func (s ClassSet) Classes() []CharClass {
	var out []CharClass
	for _, c := range AllClasses {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of classes in the set.
func (s ClassSet) Len() int {
	return len(s.Classes())
}

// Alphabet concatenates the characters of every member class in canonical order.
func (s ClassSet) Alphabet() string {
	var b strings.Builder
	for _, c := range s.Classes() {
		b.WriteString(c.Chars())
	}
	return b.String()
}

// Names returns the class names of the set in canonical order.
func (s ClassSet) Names() []string {
	classes := s.Classes()
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.String()
	}
	return names
}

// ParseClassSet builds a set from class names.
func ParseClassSet(names []string) (ClassSet, error) {
	var s ClassSet
	for _, name := range names {
		c, err := ParseCharClass(name)
		if err != nil {
			return 0, err
		}
		s |= ClassSet(c)
	}
	return s, nil
}

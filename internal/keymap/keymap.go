// Package keymap maps physical keyboard keys to the 16 logical CHIP-8 keys.
//
// The default layout places the hex keypad on the left side of a QWERTY
// keyboard:
//
//	Keyboard      Keypad
//	1 2 3 4       1 2 3 C
//	q w e r       4 5 6 D
//	a s d f       7 8 9 E
//	z x c v       A 0 B F
package keymap

import "unicode"

// Layout lists the keyboard characters in keypad order, row by row.
var Layout = [16]rune{
	'1', '2', '3', '4',
	'q', 'w', 'e', 'r',
	'a', 's', 'd', 'f',
	'z', 'x', 'c', 'v',
}

// keypad lists the logical key for each entry of Layout.
var keypad = [16]int{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

var byRune = func() map[rune]int {
	m := make(map[rune]int, len(Layout))
	for i, r := range Layout {
		m[r] = keypad[i]
	}
	return m
}()

// Key returns the logical key of the keyboard character. Letters are
// matched case insensitively.
func Key(r rune) (int, bool) {
	key, ok := byRune[unicode.ToLower(r)]
	return key, ok
}

// Rune returns the keyboard character that is mapped to the logical key.
func Rune(key int) (rune, bool) {
	for i, k := range keypad {
		if k == key {
			return Layout[i], true
		}
	}
	return 0, false
}

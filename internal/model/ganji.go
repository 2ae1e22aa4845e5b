package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Stem int

type Branch int

type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var elementNames = [...]string{"wood", "fire", "earth", "metal", "water"}

func (e Element) String() string {
	if e < Wood || e > Water {
		return fmt.Sprintf("element(%d)", int(e))
	}
	return elementNames[e]
}

// Generates reports whether e feeds o in the 상생 cycle
// (wood → fire → earth → metal → water → wood).
func (e Element) Generates(o Element) bool {
	return (e+1)%5 == o
}

// Controls reports whether e overcomes o in the 상극 cycle
// (wood → earth → water → fire → metal → wood).
func (e Element) Controls(o Element) bool {
	return (e+2)%5 == o
}

type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yin {
		return "yin"
	}
	return "yang"
}

var (
	stemNames   = [...]string{"", "갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}
	stemHanja   = [...]string{"", "甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	stemElem    = [...]Element{0, Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water}
	branchNames = [...]string{"", "자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}
	branchHanja = [...]string{"", "子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	branchElem  = [...]Element{0, Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water}
)

func (s Stem) Valid() bool { return s >= 1 && s <= 10 }

func (s Stem) Name() string {
	if !s.Valid() {
		return "?"
	}
	return stemNames[s]
}

func (s Stem) Hanja() string {
	if !s.Valid() {
		return "?"
	}
	return stemHanja[s]
}

func (s Stem) Element() Element { return stemElem[s] }

func (s Stem) Polarity() Polarity { return Polarity((s - 1) % 2) }

func (b Branch) Valid() bool { return b >= 1 && b <= 12 }

func (b Branch) Name() string {
	if !b.Valid() {
		return "?"
	}
	return branchNames[b]
}

func (b Branch) Hanja() string {
	if !b.Valid() {
		return "?"
	}
	return branchHanja[b]
}

func (b Branch) Element() Element { return branchElem[b] }

func (b Branch) Polarity() Polarity { return Polarity((b - 1) % 2) }

// Pillar renders a stem/branch pair in the "갑자(甲子)" form used by the
// lunar calendar service.
func Pillar(s Stem, b Branch) string {
	return s.Name() + b.Name() + "(" + s.Hanja() + b.Hanja() + ")"
}

// ParseGanji reads a two-character day code such as "갑자" or "갑자(甲子)".
// The first character is the stem and the second the branch; both Hangul and
// Hanja forms are accepted.
func ParseGanji(code string) (Stem, Branch, error) {
	code = strings.TrimSpace(code)
	if i := strings.IndexAny(code, "(（"); i >= 0 {
		code = strings.TrimSpace(code[:i])
	}
	if utf8.RuneCountInString(code) < 2 {
		return 0, 0, fmt.Errorf("ganji code %q too short", code)
	}
	first, size := utf8.DecodeRuneInString(code)
	second, _ := utf8.DecodeRuneInString(code[size:])

	s := lookup(string(first), stemNames[:], stemHanja[:])
	b := lookup(string(second), branchNames[:], branchHanja[:])
	if s == 0 || b == 0 {
		return 0, 0, fmt.Errorf("unknown ganji code %q", code)
	}
	return Stem(s), Branch(b), nil
}

func lookup(ch string, names, hanja []string) int {
	for i := 1; i < len(names); i++ {
		if names[i] == ch || hanja[i] == ch {
			return i
		}
	}
	return 0
}

package geometry

import (
	"maps"
	"math"
	"strings"

	"layout-planner/internal/common/apperrors"
)

// ============================================================
// Families
// ============================================================

// Family это одно из поддерживаемых семейств фигур.
type Family string

const (
	Square Family = "square"
	L      Family = "l"
	U      Family = "u"
	Circle Family = "circle"
)

// ParseFamily принимает написание семейства из протокола ("square", "L",
// "u-shape", ...).
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square", "rect", "rectangle":
		return Square, nil
	case "l", "l-shape", "lshape":
		return L, nil
	case "u", "u-shape", "ushape":
		return U, nil
	case "circle":
		return Circle, nil
	}
	return "", apperrors.Validation(apperrors.CodeFamilyUnknown, "unknown shape family %q", s)
}

// ============================================================
// Side tables
// ============================================================

// Sides сопоставляет имени стороны её длину в пользовательских единицах.
type Sides map[string]float64

// Clone возвращает независимую копию s.
func (s Sides) Clone() Sides {
	return maps.Clone(s)
}

// InteriorAngle это отображаемое значение read-only сторон внутренних углов.
const InteriorAngle = 90.0

var sideNames = map[Family][]string{
	Square: {"width", "height"},
	L:      {"a", "b", "c", "d"},
	U:      {"a", "b", "c", "d", "e", "f"},
	Circle: {"radius"},
}

var readOnlySides = map[Family][]string{
	L: {"i"},
	U: {"i1", "i2"},
}

// SideNames возвращает изменяемые стороны семейства.
func SideNames(f Family) []string {
	return append([]string(nil), sideNames[f]...)
}

// ReadOnlySides возвращает псевдостороны внутренних углов семейства.
func ReadOnlySides(f Family) []string {
	return append([]string(nil), readOnlySides[f]...)
}

// IsSide сообщает, является ли name изменяемой стороной f.
func IsSide(f Family, name string) bool {
	for _, s := range sideNames[f] {
		if s == name {
			return true
		}
	}
	return false
}

// IsReadOnlySide сообщает, является ли name псевдостороной внутреннего угла
// f.
func IsReadOnlySide(f Family, name string) bool {
	for _, s := range readOnlySides[f] {
		if s == name {
			return true
		}
	}
	return false
}

// CheckSides проверяет, что sides содержит ровно нужные f положительные
// длины.
func CheckSides(f Family, sides Sides) error {
	names, ok := sideNames[f]
	if !ok {
		return apperrors.Validation(apperrors.CodeFamilyUnknown, "unknown shape family %q", f)
	}
	for _, name := range names {
		v, ok := sides[name]
		if !ok {
			return apperrors.Validation(apperrors.CodeSideUnknown, "side %q is missing", name)
		}
		if err := CheckLength(name, v); err != nil {
			return err
		}
	}
	return nil
}

// MaxSide это максимальная допустимая длина стороны в пользовательских
// единицах.
const MaxSide = 1e6

// CheckLength проверяет длину стороны: положительная, конечная и не больше
// MaxSide.
func CheckLength(name string, v float64) error {
	if !(v > 0) {
		return apperrors.Validation(apperrors.CodeSideNotPositive, "side %q must be greater than 0, got %g", name, v)
	}
	if math.IsInf(v, 0) || v > MaxSide {
		return apperrors.Validation(apperrors.CodeSideOutOfRange, "side %q must be at most %g, got %g", name, float64(MaxSide), v)
	}
	return nil
}

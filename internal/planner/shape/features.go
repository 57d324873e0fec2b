package shape

import (
	"sort"

	"layout-planner/internal/common/apperrors"
)

// Feature это привязка к стороне.
type Feature string

const (
	Wall          Feature = "wall"
	Backsplash    Feature = "backsplash"
	RoundedCorner Feature = "rounded-corner"
)

// ParseFeature переводит имена протокола ("wall", "backsplash",
// "rounded-box") в Feature.
func ParseFeature(s string) (Feature, error) {
	switch s {
	case "wall":
		return Wall, nil
	case "backsplash":
		return Backsplash, nil
	case "rounded-corner", "rounded-box", "rounded":
		return RoundedCorner, nil
	}
	return "", apperrors.Validation(apperrors.CodeFeatureKind, "unknown feature %q", s)
}

// features хранит флаги как множества имён сторон по видам.
type features map[Feature]map[string]bool

func newFeatures() features {
	return features{
		Wall:          {},
		Backsplash:    {},
		RoundedCorner: {},
	}
}

// Has сообщает, есть ли фича на стороне side.
func (s *Shape) Has(kind Feature, side string) bool {
	return s.features[kind][side]
}

// Enable включает флаг фичи. Инварианты между фичами обеспечивают движки
// семейств, а не этот тип.
func (s *Shape) Enable(kind Feature, side string) {
	if s.features[kind] == nil {
		s.features[kind] = map[string]bool{}
	}
	s.features[kind][side] = true
}

// Disable выключает флаг фичи.
func (s *Shape) Disable(kind Feature, side string) {
	delete(s.features[kind], side)
}

// FeatureSides возвращает отсортированные стороны с фичей kind.
func (s *Shape) FeatureSides(kind Feature) []string {
	out := make([]string, 0, len(s.features[kind]))
	for side, on := range s.features[kind] {
		if on {
			out = append(out, side)
		}
	}
	sort.Strings(out)
	return out
}

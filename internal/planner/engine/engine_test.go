package engine

import (
	"math"
	"testing"

	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/geometry"
	"layout-planner/internal/planner/shape"
)

func draw(t *testing.T, e Engine) *shape.Shape {
	t.Helper()
	s, err := e.Draw("shape-1", geometry.Pt(20, 20), shape.Material{ID: "m1", Image: "granite.png"})
	if err != nil {
		t.Fatalf("draw %s: %v", e.Family(), err)
	}
	return s
}

func uSides() geometry.Sides {
	return geometry.Sides{"a": 150, "b": 100, "c": 50, "d": 40, "e": 50, "f": 90}
}

func TestDrawUsesFamilyDefaults(t *testing.T) {
	for family, e := range All() {
		s := draw(t, e)
		if s.Family != family {
			t.Errorf("expected family %s, got %s", family, s.Family)
		}
		if s.State != shape.Placeholder {
			t.Errorf("%s: expected placeholder", family)
		}
		if s.Name == "" {
			t.Errorf("%s: expected a display name", family)
		}
		if err := geometry.CheckSides(family, s.Sides()); err != nil {
			t.Errorf("%s: defaults invalid: %v", family, err)
		}
	}
	if err := uFeasible(NewUShape().defaults); err != nil {
		t.Fatalf("U defaults infeasible: %v", err)
	}
}

func TestResizeRejectsNonPositiveForEveryFamily(t *testing.T) {
	sides := map[geometry.Family]string{
		geometry.Square: "width",
		geometry.L:      "b",
		geometry.U:      "a",
		geometry.Circle: "radius",
	}
	for family, e := range All() {
		s := draw(t, e)
		before := s.Sides()
		for _, tt := range []struct {
			value float64
			code  apperrors.Code
		}{
			{0, apperrors.CodeSideNotPositive},
			{-5, apperrors.CodeSideNotPositive},
			{math.NaN(), apperrors.CodeSideNotPositive},
			{math.Inf(1), apperrors.CodeSideOutOfRange},
			{1e308, apperrors.CodeSideOutOfRange},
			{geometry.MaxSide * 2, apperrors.CodeSideOutOfRange},
		} {
			_, err := e.Resize(s, sides[family], tt.value)
			if apperrors.CodeOf(err) != tt.code {
				t.Errorf("%s resize(%v): expected %s, got %v", family, tt.value, tt.code, err)
			}
		}
		for name, v := range before {
			if got, _ := s.Get(name); got != v {
				t.Errorf("%s: side %s changed from %v to %v", family, name, v, got)
			}
		}
	}
}

func TestUFeasibility(t *testing.T) {
	e := NewUShape()
	s := draw(t, e)
	if err := s.Replace(uSides()); err != nil {
		t.Fatal(err)
	}
	before := s.Outline()

	_, err := e.Resize(s, "a", 10)
	if apperrors.CodeOf(err) != apperrors.CodeShapeInfeasible {
		t.Fatalf("expected infeasible error, got %v", err)
	}
	if got, _ := s.Get("a"); got != 150 {
		t.Fatalf("expected a to stay 150, got %v", got)
	}
	for i, v := range s.Outline().Vertices {
		if v != before.Vertices[i] {
			t.Fatalf("vertex %d moved after a rejected resize", i)
		}
	}

	change, err := e.Resize(s, "a", 200)
	if err != nil {
		t.Fatalf("expected a=200 to succeed: %v", err)
	}
	if change != (Change{Side: "a", Old: 150, New: 200}) {
		t.Fatalf("unexpected change %+v", change)
	}
}

func TestUFeasibleClauses(t *testing.T) {
	tests := []struct {
		name string
		side string
		val  float64
		ok   bool
	}{
		{"notch closes", "c", 100, false},
		{"right arm too wide", "e", 100, false},
		{"right arm inner side vanishes", "b", 50, false},
		{"left arm reaches the bottom", "d", 90, false},
		{"bottom shorter than arm depth", "f", 40, false},
		{"taller right arm", "b", 160, true},
		{"deeper notch", "d", 80, true},
	}
	for _, tt := range tests {
		candidate := uSides()
		candidate[tt.side] = tt.val
		err := uFeasible(candidate)
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%s: expected infeasible", tt.name)
		}
	}
}

func TestResizeReadOnlySide(t *testing.T) {
	for _, tt := range []struct {
		e    Engine
		side string
	}{{NewLShape(), "i"}, {NewUShape(), "i1"}, {NewUShape(), "i2"}} {
		s := draw(t, tt.e)
		if _, err := tt.e.Resize(s, tt.side, 45); apperrors.CodeOf(err) != apperrors.CodeSideReadOnly {
			t.Errorf("%s %s: expected read-only error, got %v", tt.e.Family(), tt.side, err)
		}
	}
}

func TestSquareResizeAcceptsFeatureSides(t *testing.T) {
	e := NewSquare()
	s := draw(t, e)
	if _, err := e.Resize(s, "B", 75); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get("height"); got != 75 {
		t.Fatalf("expected height 75, got %v", got)
	}
	if _, err := e.Resize(s, "width", 120); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get("width"); got != 120 {
		t.Fatalf("expected width 120, got %v", got)
	}
}

func TestLScenarioResizeB(t *testing.T) {
	e := NewLShape()
	s := draw(t, e)
	if got, _ := s.Get("b"); got != 50 {
		t.Fatalf("expected default b=50, got %v", got)
	}

	if _, err := e.Resize(s, "b", 80); err != nil {
		t.Fatal(err)
	}

	pair, _ := geometry.SideEdge(geometry.L, "b")
	v := s.Outline().Vertices
	if got := geometry.Distance(v[pair[0]], v[pair[1]]); math.Abs(got-80*geometry.Scale) > 1e-9 {
		t.Fatalf("expected side b edge %v, got %v", 80*geometry.Scale, got)
	}
	for side, want := range map[string]float64{"a": 60, "c": 90, "d": 60} {
		if got, _ := s.Get(side); got != want {
			t.Errorf("side %s changed to %v", side, got)
		}
	}
}

func TestWallDisablesAdjacentRoundedCorners(t *testing.T) {
	e := NewSquare()
	s := draw(t, e)

	if err := e.AddFeature(s, shape.Wall, "A"); err != nil {
		t.Fatal(err)
	}
	avail := e.CornerAvailability(s)
	if avail["A"] || avail["D"] {
		t.Fatalf("expected corners A and D disabled, got %v", avail)
	}
	if !avail["B"] || !avail["C"] {
		t.Fatalf("expected corners B and C enabled, got %v", avail)
	}

	if err := e.RemoveFeature(s, shape.Wall, "A"); err != nil {
		t.Fatal(err)
	}
	avail = e.CornerAvailability(s)
	if !avail["A"] || !avail["D"] {
		t.Fatalf("expected corners re-enabled, got %v", avail)
	}
}

func TestWallClearsExistingRoundedCorners(t *testing.T) {
	e := NewSquare()
	s := draw(t, e)
	for _, side := range []string{"A", "D", "B"} {
		if err := e.AddFeature(s, shape.RoundedCorner, side); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.AddFeature(s, shape.Wall, "A"); err != nil {
		t.Fatal(err)
	}
	if s.Has(shape.RoundedCorner, "A") || s.Has(shape.RoundedCorner, "D") {
		t.Fatal("expected rounded corners A and D cleared by the wall")
	}
	if !s.Has(shape.RoundedCorner, "B") {
		t.Fatal("expected rounded corner B to survive")
	}
}

func TestRoundedCornerClearsWallsAndBacksplash(t *testing.T) {
	e := NewUShape()
	s := draw(t, e)
	if err := e.AddFeature(s, shape.Backsplash, "b"); err != nil {
		t.Fatal(err)
	}
	if err := e.AddFeature(s, shape.RoundedCorner, "e"); err != nil {
		t.Fatal(err)
	}
	if s.Has(shape.Wall, "b") || s.Has(shape.Backsplash, "b") {
		t.Fatal("expected wall and backsplash on b cleared by the rounded corner")
	}
}

func TestBacksplashAddsWall(t *testing.T) {
	e := NewLShape()
	s := draw(t, e)
	if err := e.AddFeature(s, shape.Backsplash, "a"); err != nil {
		t.Fatal(err)
	}
	if !s.Has(shape.Wall, "a") || !s.Has(shape.Backsplash, "a") {
		t.Fatal("expected wall and backsplash on a")
	}

	if err := e.RemoveFeature(s, shape.Wall, "a"); err != nil {
		t.Fatal(err)
	}
	if s.Has(shape.Backsplash, "a") {
		t.Fatal("expected backsplash removed with its wall")
	}
}

func TestFeatureErrorsAndIdempotentRemoval(t *testing.T) {
	e := NewSquare()
	s := draw(t, e)

	if err := e.RemoveFeature(s, shape.Wall, "C"); err != nil {
		t.Fatalf("removing a missing wall should be a no-op, got %v", err)
	}
	if err := e.AddFeature(s, shape.Wall, "C"); err != nil {
		t.Fatal(err)
	}
	if err := e.AddFeature(s, shape.Wall, "C"); apperrors.CodeOf(err) != apperrors.CodeFeatureExists {
		t.Fatalf("expected feature-exists error, got %v", err)
	}
	if err := e.AddFeature(s, shape.Wall, "Z"); apperrors.CodeOf(err) != apperrors.CodeFeatureSide {
		t.Fatalf("expected unsupported-side error, got %v", err)
	}
	if err := e.AddFeature(s, shape.RoundedCorner, "b"); apperrors.KindOf(err) != apperrors.KindPrecondition {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestLConcaveCornerCannotBeRounded(t *testing.T) {
	e := NewLShape()
	s := draw(t, e)
	if err := e.AddFeature(s, shape.RoundedCorner, "b"); apperrors.CodeOf(err) != apperrors.CodeFeatureSide {
		t.Fatalf("expected unsupported-side error, got %v", err)
	}
}

func TestCircleHasNoFeatureSides(t *testing.T) {
	e := NewCircle()
	s := draw(t, e)
	if err := e.AddFeature(s, shape.Wall, "radius"); apperrors.CodeOf(err) != apperrors.CodeFeatureSide {
		t.Fatalf("expected unsupported-side error, got %v", err)
	}
	if _, err := e.Resize(s, "radius", 25); err != nil {
		t.Fatal(err)
	}
	if got := s.Outline().Radius; got != 25*geometry.Scale {
		t.Fatalf("expected radius %v, got %v", 25*geometry.Scale, got)
	}
}

func TestRotateFourTimes(t *testing.T) {
	for _, e := range All() {
		s := draw(t, e)
		start := s.Transform
		for i := 0; i < 4; i++ {
			e.Rotate(s, 90)
		}
		if s.Transform.Rotation != start.Rotation {
			t.Errorf("%s: rotation %v, want %v", e.Family(), s.Transform.Rotation, start.Rotation)
		}
		if !s.Transform.Position.Near(start.Position, 1e-9) {
			t.Errorf("%s: position %+v, want %+v", e.Family(), s.Transform.Position, start.Position)
		}
	}
}

func TestDeleteFreezesShape(t *testing.T) {
	e := NewSquare()
	s := draw(t, e)
	e.Delete(s)
	if _, err := e.Resize(s, "width", 10); apperrors.CodeOf(err) != apperrors.CodeShapeDeleted {
		t.Fatalf("expected deleted error, got %v", err)
	}
}

func TestAnchorsSitOutsideTheirSide(t *testing.T) {
	e := NewSquare()
	s := draw(t, e)
	if err := e.AddFeature(s, shape.Backsplash, "A"); err != nil {
		t.Fatal(err)
	}

	anchors := e.Anchors(s)
	if len(anchors) != 4 {
		t.Fatalf("expected 4 anchors, got %d", len(anchors))
	}
	a := anchors[0]
	if a.Side != "A" || a.Value != 100 {
		t.Fatalf("unexpected first anchor %+v", a)
	}
	top := s.WorldOutline().Vertices[0].Y
	if a.Wall == nil || a.Backsplash == nil {
		t.Fatal("expected wall and backsplash strips on A")
	}
	// y grows downward: outside the top edge means smaller y
	if !(a.Wall.Center.Y < top && a.Backsplash.Center.Y < a.Wall.Center.Y && a.Region.Center.Y < a.Backsplash.Center.Y) {
		t.Fatalf("expected wall, backsplash, label stacked outward: wall %v, backsplash %v, label %v",
			a.Wall.Center.Y, a.Backsplash.Center.Y, a.Region.Center.Y)
	}
	if a.Wall.W != 100*geometry.Scale {
		t.Fatalf("expected wall as long as the side, got %v", a.Wall.W)
	}
	if anchors[1].Wall != nil {
		t.Fatal("unexpected wall on B")
	}
}

func TestAnchorsFollowResizeAndRotation(t *testing.T) {
	e := NewUShape()
	s := draw(t, e)
	if err := e.AddFeature(s, shape.Wall, "a"); err != nil {
		t.Fatal(err)
	}
	wallOf := func() *geometry.Rect {
		for _, a := range e.Anchors(s) {
			if a.Side == "a" {
				return a.Wall
			}
		}
		return nil
	}

	if _, err := e.Resize(s, "a", 200); err != nil {
		t.Fatal(err)
	}
	if got := wallOf().W; got != 200*geometry.Scale {
		t.Fatalf("expected wall resized to %v, got %v", 200*geometry.Scale, got)
	}

	e.Rotate(s, 90)
	if got := wallOf().Angle; math.Abs(got-270) > 1e-6 {
		t.Fatalf("expected the bottom wall to turn to 270 degrees, got %v", got)
	}

	var angles int
	for _, a := range e.Anchors(s) {
		if a.Kind == shape.AngleAnchor {
			angles++
		}
	}
	if angles != 2 {
		t.Fatalf("expected 2 interior-angle anchors, got %d", angles)
	}
}

func TestSnapshotCarriesFeatures(t *testing.T) {
	e := NewSquare()
	s := draw(t, e)
	if err := e.AddFeature(s, shape.Wall, "A"); err != nil {
		t.Fatal(err)
	}
	snap := e.Snapshot(s)
	if !snap.Features["A"].Wall || snap.Features["A"].RoundedCornerAvailable {
		t.Fatalf("unexpected features for A: %+v", snap.Features["A"])
	}
	if !snap.Features["B"].RoundedCornerAvailable {
		t.Fatalf("expected corner B available: %+v", snap.Features["B"])
	}
	if len(snap.Anchors) != 4 {
		t.Fatalf("expected 4 anchors, got %d", len(snap.Anchors))
	}
}

// Package task defines the closed vocabulary of values layers exchange each tick.
//
// A Task is an opaque tagged value: concrete kinds carry immutable domain payload, and are
// compared by identity (not payload) for completion tracking. Kind membership supports explicit
// widening, standing in for the reference implementation's subtype-membership checks (see
// original_source/task/__init__.py and controller.py's isinstance checks).
package task

// Kind tags a concrete Task type. Layers declare the kinds they accept and emit in terms of
// Kind, never the concrete Go type, so that routing is a pure tag comparison.
type Kind string

const (
	KindAxialMovement   Kind = "AxialMovement"
	KindLinearMovement  Kind = "LinearMovement"
	KindTurn            Kind = "Turn"
	KindTankDrive       Kind = "TankDrive"
	KindHolonomicDrive  Kind = "HolonomicDrive"
	KindMoveToField     Kind = "MoveToField"
	KindGamepadInput    Kind = "GamepadInput"
	KindKeyboardInput   Kind = "KeyboardInput"
	KindLocalization    Kind = "Localization"
	KindDistanceSensor  Kind = "DistanceSensor"
	KindLift            Kind = "Lift"
	KindLiftTeleop      Kind = "LiftTeleop"
	KindTower           Kind = "Tower"
	KindTowerTeleop     Kind = "TowerTeleop"
	KindWin             Kind = "Win"
)

// Set is a set of Kinds, used for a Layer's declared input_tasks/output_tasks.
type Set map[Kind]struct{}

// NewSet builds a Set from the given kinds.
func NewSet(kinds ...Kind) Set {
	s := make(Set, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Contains reports whether k is a direct member of s (no widening).
func (s Set) Contains(k Kind) bool {
	_, ok := s[k]
	return ok
}

// Intersects reports whether s and other share any kind, honoring the widening table: a kind k
// in other satisfies membership in s if k itself, or any kind it widens to, is in s.
func (s Set) Intersects(other Set) bool {
	for k := range other {
		if s.Accepts(k) {
			return true
		}
	}
	return false
}

// Accepts reports whether a task of kind k may be routed to a consumer declaring s as its
// input_tasks (or matched against s as a parent's output_tasks), per the widening table.
func (s Set) Accepts(k Kind) bool {
	if s.Contains(k) {
		return true
	}
	for _, ancestor := range Widens(k) {
		if s.Contains(ancestor) {
			return true
		}
	}
	return false
}

// widensTo declares, for a kind, the broader kinds it also satisfies membership as. The reference
// Python implementation used isinstance() against concrete classes and their base classes; Go has
// no such implicit hierarchy; this table is the explicit substitute spec.md's Design Notes call
// for ("declare explicit widening relations in a small table rather than using inheritance").
var widensTo = map[Kind][]Kind{
	KindAxialMovement:  {KindLinearMovement},
	KindTurn:           {KindLinearMovement},
	KindLiftTeleop:     {KindLift},
	KindTowerTeleop:    {KindTower},
}

// Widens returns the kinds that k also satisfies membership as, transitively.
func Widens(k Kind) []Kind {
	var out []Kind
	seen := map[Kind]bool{k: true}
	frontier := []Kind{k}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, parent := range widensTo[cur] {
			if !seen[parent] {
				seen[parent] = true
				out = append(out, parent)
				frontier = append(frontier, parent)
			}
		}
	}
	return out
}

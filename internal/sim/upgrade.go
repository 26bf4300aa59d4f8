package sim

// UpgradeID identifies one entry of the upgrade catalog.
// The numeric values are part of the observation contract: offered card ids
// are encoded as (id+0.5)/UpgradeCount.
type UpgradeID uint8

const (
	UpgradeRingOfFire UpgradeID = iota
	UpgradeBigShot
	UpgradePiercingRounds
	UpgradeFrostRounds
	UpgradeFastHands
	UpgradeExtendedMag
	UpgradeCardio
	UpgradeSecondWind
	UpgradeCount
)

// String returns the display name of the upgrade.
func (id UpgradeID) String() string {
	if int(id) < len(catalog) {
		return catalog[id].Name
	}
	return "Unknown"
}

// UpgradeDef is one immutable catalog entry.
type UpgradeDef struct {
	ID        UpgradeID
	Name      string
	Unique    bool
	MaxStacks int
}

// catalog is the process-wide read-only upgrade table. Effects are direct
// reads of the stack level by the simulator each tick; the catalog stores
// only stacking rules, never behavior.
var catalog = [UpgradeCount]UpgradeDef{
	{UpgradeRingOfFire, "Ring of Fire", false, 5},
	{UpgradeBigShot, "Big Shot", false, 3},
	{UpgradePiercingRounds, "Piercing Rounds", false, 3},
	{UpgradeFrostRounds, "Frost Rounds", false, 4},
	{UpgradeFastHands, "Fast Hands", false, 4},
	{UpgradeExtendedMag, "Extended Mag", false, 5},
	{UpgradeCardio, "Cardio", false, 5},
	{UpgradeSecondWind, "Second Wind", true, 1},
}

// Catalog returns a copy of the upgrade definition table.
func Catalog() []UpgradeDef {
	out := make([]UpgradeDef, len(catalog))
	copy(out, catalog[:])
	return out
}

// UpgradeState holds per-episode stack levels plus the one-shot flag for the
// revival upgrade. Mutated only through Apply.
type UpgradeState struct {
	Levels         [UpgradeCount]int
	SecondWindUsed bool
}

// Level returns the current stack level for id.
func (s *UpgradeState) Level(id UpgradeID) int {
	if int(id) >= len(s.Levels) {
		return 0
	}
	return s.Levels[id]
}

// Apply increments the stack level for id unless the catalog cap is already
// reached. Applying past the cap is a no-op, never an error. Returns whether
// the level changed.
func (s *UpgradeState) Apply(id UpgradeID) bool {
	if int(id) >= len(catalog) {
		return false
	}
	if s.Levels[id] >= catalog[id].MaxStacks {
		return false
	}
	s.Levels[id]++
	return true
}

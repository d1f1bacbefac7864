package bundle

// Lineage names how a bundle was produced.
type Lineage string

const (
	// LineageRun is a bundle produced by executing a command.
	LineageRun Lineage = "run"
	// LineageUpload is a bundle produced by direct upload.
	LineageUpload Lineage = "upload"
	// LineageMake is a bundle composed from other bundles.
	LineageMake Lineage = "make"
)

// StateSet is an immutable set of states with a stable iteration order.
type StateSet struct {
	ordered []State
	members map[State]struct{}
}

// NewStateSet builds a set from the given states, dropping duplicates.
func NewStateSet(states ...State) StateSet {
	set := StateSet{members: make(map[State]struct{}, len(states))}
	for _, s := range states {
		if _, ok := set.members[s]; ok {
			continue
		}
		set.members[s] = struct{}{}
		set.ordered = append(set.ordered, s)
	}
	return set
}

// Contains reports whether s is a member.
func (set StateSet) Contains(s State) bool {
	_, ok := set.members[s]
	return ok
}

// States returns the members in declaration order.
func (set StateSet) States() []State {
	out := make([]State, len(set.ordered))
	copy(out, set.ordered)
	return out
}

// Len returns the number of members.
func (set StateSet) Len() int {
	return len(set.ordered)
}

// Intersect returns the states present in both sets, in the receiver's order.
func (set StateSet) Intersect(other StateSet) StateSet {
	var common []State
	for _, s := range set.ordered {
		if other.Contains(s) {
			common = append(common, s)
		}
	}
	return NewStateSet(common...)
}

// Lineage membership. "created" and "ready" are shared entry and exit points.
var (
	RunLineage = NewStateSet(
		StateCreated,
		StateStaged,
		StateStarting,
		StatePreparing,
		StateRunning,
		StateFinalizing,
		StateReady,
	)
	UploadLineage = NewStateSet(StateCreated, StateUploading, StateReady)
	MakeLineage   = NewStateSet(StateCreated, StateMaking, StateReady)
	Final         = NewStateSet(FinalStates()...)
	Offline       = NewStateSet(StateWorkerOffline)
)

// Lineages returns every lineage in a fixed order.
func Lineages() []Lineage {
	return []Lineage{LineageRun, LineageUpload, LineageMake}
}

// States returns the member states of the lineage.
func (l Lineage) States() StateSet {
	switch l {
	case LineageRun:
		return RunLineage
	case LineageUpload:
		return UploadLineage
	case LineageMake:
		return MakeLineage
	default:
		return NewStateSet()
	}
}

// LineageOf returns every lineage that can reach s.
// worker_offline belongs to none.
func LineageOf(s State) []Lineage {
	var out []Lineage
	for _, l := range Lineages() {
		if l.States().Contains(s) {
			out = append(out, l)
		}
	}
	return out
}

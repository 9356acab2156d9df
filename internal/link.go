package internal

// DependencyLink is one edge of the dependency graph spec §3 describes as
// "Dep list / Sub list": it ties a Signal (or the Signal embedded in a
// Computed) to a Computed that read it during its last run. Each side keeps
// its own intrusive doubly-linked list — dep's subscribers via
// prevSub/nextSub, sub's dependencies via prevDep/nextDep — so adding or
// dropping an edge never allocates a slice.
type DependencyLink struct {
	dep *Signal
	sub *Computed

	prevDep *DependencyLink
	nextDep *DependencyLink

	prevSub *DependencyLink
	nextSub *DependencyLink
}

package resources

// sustainedDeficit is the number of deficit cycles after which a low balance
// gets a branch pruned.
const sustainedDeficit = 2

func (s *System) shouldPrune(depth int, st State) bool {
	if depth <= 1 {
		return false
	}
	// Depth stands in for age.
	if depth < s.params.PruningGracePeriod+2 {
		return false
	}
	if st.LightCapture < s.params.MinLightThreshold {
		return true
	}
	return st.ResourceBalance < s.params.MinResourceThreshold && st.DeficitDuration >= sustainedDeficit
}

// evaluatePruning recomputes every prune mark and returns the number marked.
func (s *System) evaluatePruning(snaps []Snapshot) int {
	marked := 0
	for i := range snaps {
		m := s.shouldPrune(snaps[i].Depth, s.states[i])
		s.states[i].MarkedForPruning = m
		if m {
			marked++
		}
	}
	return marked
}

package maze

// OpenDirs returns the candidate directions out of t that are not blocked,
// in Candidates order, skipping forbid. If nothing else is open the result
// is forbid alone, so callers always get a way out.
func (m *Maze) OpenDirs(t Tile, forbid Dir, allowGate bool) []Dir {
	dirs := make([]Dir, 0, len(Candidates))
	for _, d := range Candidates {
		if d == forbid {
			continue
		}
		n := t.Add(d, 1)
		if !m.Blocked(n.C, n.R, allowGate) {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return []Dir{forbid}
	}
	return dirs
}

// GreedyDir picks the non-reversing open direction out of t whose
// neighbour is closest to target (squared tile distance). Reversal is only
// chosen when it is the sole option.
func (m *Maze) GreedyDir(t, target Tile, cur Dir, allowGate bool) Dir {
	dirs := m.OpenDirs(t, cur.Reverse(), allowGate)
	best := dirs[0]
	bestD := -1
	for _, d := range dirs {
		dd := t.Add(d, 1).DistSq(target)
		if bestD < 0 || dd < bestD {
			best, bestD = d, dd
		}
	}
	return best
}

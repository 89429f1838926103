package simulation

// RefreshOffline redraws the set of rooms simulated as having dead
// telemetry: 8 or 9 distinct rooms, or every room if the building has
// fewer. The new set replaces the old one atomically; readings in flight
// see either the old or the new set, never a partial one. Returns the
// selected room ids for logging.
func (s *Simulator) RefreshOffline() []string {
	count := minOfflineRooms + s.intn(maxOfflineRooms-minOfflineRooms+1)
	if count > len(s.roomOrder) {
		count = len(s.roomOrder)
	}

	next := make(map[string]struct{}, count)
	ids := make([]string, 0, count)
	for _, idx := range s.perm(len(s.roomOrder))[:count] {
		id := s.roomOrder[idx]
		next[id] = struct{}{}
		ids = append(ids, id)
	}

	s.mu.Lock()
	s.offline = next
	s.mu.Unlock()

	return ids
}

// OfflineRooms returns a snapshot of the current offline set.
func (s *Simulator) OfflineRooms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.offline))
	for id := range s.offline {
		ids = append(ids, id)
	}
	return ids
}

func (s *Simulator) isOffline(roomID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.offline[roomID]
	return ok
}

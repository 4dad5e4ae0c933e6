package goku

// Screenshot queues a labeled screenshot of the next rendered frame. The
// backend drains the queue with TakeScreenshots after drawing.
func (s *Scene) Screenshot(label string) {
	s.shots = append(s.shots, label)
}

// TakeScreenshots returns and clears the queued labels.
func (s *Scene) TakeScreenshots() []string {
	if len(s.shots) == 0 {
		return nil
	}
	out := s.shots
	s.shots = nil
	return out
}

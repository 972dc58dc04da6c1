package story

// List is the ordered collection of currently known stories, newest first.
// It never holds two stories with the same StoryID.
type List struct {
	Stories []Story
}

// NewList builds a List preserving the given order. Records with a StoryID
// already seen are skipped so the uniqueness invariant holds even for a
// misbehaving server.
func NewList(stories []Story) *List {
	l := &List{Stories: make([]Story, 0, len(stories))}
	seen := make(map[string]struct{}, len(stories))
	for _, s := range stories {
		if _, ok := seen[s.StoryID]; ok {
			continue
		}
		seen[s.StoryID] = struct{}{}
		l.Stories = append(l.Stories, s)
	}
	return l
}

// Prepend puts s at the front of the list. An existing story with the same
// StoryID is evicted first.
func (l *List) Prepend(s Story) {
	l.RemoveByID(s.StoryID)
	l.Stories = append([]Story{s}, l.Stories...)
}

// RemoveByID filters out any story matching id and reports whether the
// list changed. Removing an absent id is a no-op.
func (l *List) RemoveByID(id string) bool {
	kept := l.Stories[:0]
	removed := false
	for _, s := range l.Stories {
		if s.StoryID == id {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	l.Stories = kept
	return removed
}

// ByID returns the story matching id, if present.
func (l *List) ByID(id string) (Story, bool) {
	for _, s := range l.Stories {
		if s.StoryID == id {
			return s, true
		}
	}
	return Story{}, false
}

// ContainsID reports whether a story with the given id is in the list.
func (l *List) ContainsID(id string) bool {
	_, ok := l.ByID(id)
	return ok
}

// Len returns the number of stories in the list.
func (l *List) Len() int {
	return len(l.Stories)
}

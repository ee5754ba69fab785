package deck

// MasteryState is the persisted classification of a deck's cards as known or
// unknown. A card id is never in both sets at once. Serialized as arrays to
// match the storage contract; order is insertion order.
type MasteryState struct {
	KnownIDs   []int `json:"knownIds"`
	UnknownIDs []int `json:"unknownIds"`
}

// Known reports whether the card id is in the known set.
func (m *MasteryState) Known(id int) bool {
	return contains(m.KnownIDs, id)
}

// Unknown reports whether the card id is in the unknown set.
func (m *MasteryState) Unknown(id int) bool {
	return contains(m.UnknownIDs, id)
}

// Record moves the card id into exactly one of the two sets. Recording the
// same outcome twice is a no-op beyond the removal-then-add.
func (m *MasteryState) Record(id int, known bool) {
	m.KnownIDs = remove(m.KnownIDs, id)
	m.UnknownIDs = remove(m.UnknownIDs, id)
	if known {
		m.KnownIDs = append(m.KnownIDs, id)
	} else {
		m.UnknownIDs = append(m.UnknownIDs, id)
	}
}

// Reset empties both sets.
func (m *MasteryState) Reset() {
	m.KnownIDs = nil
	m.UnknownIDs = nil
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

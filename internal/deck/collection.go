package deck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDeckNotFound is returned when a referenced deck id is absent from the
// collection. Mutating operations must fail with it rather than panic.
var ErrDeckNotFound = errors.New("deck not found")

// ErrInvalidPayload is returned when an imported or loaded payload is neither
// the current collection shape nor a legacy deck array.
var ErrInvalidPayload = errors.New("invalid collection payload")

// Collection is the full durable state: decks plus their categorization
// records. It is owned by the deck store; sessions borrow deck references and
// write back through the mastery tracker.
type Collection struct {
	Decks    []*Deck    `json:"decks"`
	Subjects []*Subject `json:"subjects"`
	Topics   []*Topic   `json:"topics"`
}

// NewCollection returns an empty collection with non-nil slices so it
// serializes as empty arrays rather than nulls.
func NewCollection() *Collection {
	return &Collection{
		Decks:    []*Deck{},
		Subjects: []*Subject{},
		Topics:   []*Topic{},
	}
}

// Decode parses a serialized collection. Both the current object shape and
// the legacy bare deck array are accepted; legacy payloads are migrated to a
// collection with empty subjects and topics.
func Decode(data []byte) (*Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return NewCollection(), nil
	}

	if trimmed[0] == '[' {
		var decks []*Deck
		if err := json.Unmarshal(trimmed, &decks); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		c := NewCollection()
		c.Decks = decks
		if c.Decks == nil {
			c.Decks = []*Deck{}
		}
		return c, nil
	}

	if trimmed[0] != '{' {
		return nil, ErrInvalidPayload
	}
	var c Collection
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if c.Decks == nil {
		c.Decks = []*Deck{}
	}
	if c.Subjects == nil {
		c.Subjects = []*Subject{}
	}
	if c.Topics == nil {
		c.Topics = []*Topic{}
	}
	return &c, nil
}

// Encode serializes the collection in the current storage shape.
func (c *Collection) Encode() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Deck returns the deck with the given id, or ErrDeckNotFound.
func (c *Collection) Deck(id int64) (*Deck, error) {
	for _, d := range c.Decks {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, ErrDeckNotFound
}

// AddDeck inserts a deck, bumping its id past any collision. Deck ids are
// timestamp-derived, so two decks created within the same millisecond would
// otherwise collide.
func (c *Collection) AddDeck(d *Deck) {
	for c.hasDeck(d.ID) {
		d.ID++
	}
	c.Decks = append(c.Decks, d)
}

// RemoveDeck deletes the deck with the given id.
func (c *Collection) RemoveDeck(id int64) error {
	for i, d := range c.Decks {
		if d.ID == id {
			c.Decks = append(c.Decks[:i], c.Decks[i+1:]...)
			return nil
		}
	}
	return ErrDeckNotFound
}

func (c *Collection) hasDeck(id int64) bool {
	for _, d := range c.Decks {
		if d.ID == id {
			return true
		}
	}
	return false
}

// Subject returns the subject with the given id, or nil.
func (c *Collection) Subject(id int64) *Subject {
	for _, s := range c.Subjects {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Topic returns the topic with the given id, or nil.
func (c *Collection) Topic(id int64) *Topic {
	for _, t := range c.Topics {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// DeleteSubject removes a subject and its topics. References in decks are
// nulled out; decks themselves are never deleted by a cascade.
func (c *Collection) DeleteSubject(id int64) {
	for i, s := range c.Subjects {
		if s.ID == id {
			c.Subjects = append(c.Subjects[:i], c.Subjects[i+1:]...)
			break
		}
	}
	kept := c.Topics[:0]
	for _, t := range c.Topics {
		if t.SubjectID == id {
			c.clearTopicRefs(t.ID)
			continue
		}
		kept = append(kept, t)
	}
	c.Topics = kept
	for _, d := range c.Decks {
		if d.SubjectID != nil && *d.SubjectID == id {
			d.SubjectID = nil
		}
	}
}

// DeleteTopic removes a topic and nulls out references in decks.
func (c *Collection) DeleteTopic(id int64) {
	for i, t := range c.Topics {
		if t.ID == id {
			c.Topics = append(c.Topics[:i], c.Topics[i+1:]...)
			break
		}
	}
	c.clearTopicRefs(id)
}

func (c *Collection) clearTopicRefs(id int64) {
	for _, d := range c.Decks {
		if d.TopicID != nil && *d.TopicID == id {
			d.TopicID = nil
		}
	}
}

package services

import (
	"fmt"
	"log"

	prose "github.com/jdkato/prose/v2"
)

// proseTagger wraps the prose NER model. The model is warmed once at
// startup and the tagger handle is shared read-only across requests.
type proseTagger struct {
	available bool
}

// NewProseTagger builds the statistical tagger layer. When enabled is false,
// or the model fails to warm up, the tagger reports unavailable and the
// entity extractor skips the layer.
func NewProseTagger(enabled bool) StatisticalTagger {
	t := &proseTagger{}
	if !enabled {
		return t
	}

	if _, err := prose.NewDocument("warm up"); err != nil {
		log.Printf("⚠️  NER model failed to load, statistical tagging disabled: %v\n", err)
		return t
	}

	t.available = true
	return t
}

func (t *proseTagger) Available() bool {
	return t.available
}

// EntityMentions returns organization/person-like spans found in text.
func (t *proseTagger) EntityMentions(text string) (mentions []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			mentions = nil
			err = fmt.Errorf("tagger panicked: %v", r)
		}
	}()

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	for _, ent := range doc.Entities() {
		switch ent.Label {
		case "PERSON", "ORG", "GPE":
			mentions = append(mentions, ent.Text)
		}
	}

	return mentions, nil
}

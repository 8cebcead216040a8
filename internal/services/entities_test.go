package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTagger struct {
	mentions []string
	err      error
	gotText  string
}

func (f *fakeTagger) Available() bool { return true }

func (f *fakeTagger) EntityMentions(text string) ([]string, error) {
	f.gotText = text
	return f.mentions, f.err
}

type fakeGenerative struct {
	result  *GenerativeEntities
	err     error
	gotText string
}

func (f *fakeGenerative) Available() bool { return true }

func (f *fakeGenerative) Extract(ctx context.Context, text string) (*GenerativeEntities, error) {
	f.gotText = text
	return f.result, f.err
}

func TestExtractEntitiesRegexLayer(t *testing.T) {
	extractor := NewEntityExtractorService(nil, nil)

	text := "Jane Doe\njane.doe@example.com\n+1 555-123-4567\nExperienced in Python, React and PostgreSQL"
	entities := extractor.ExtractEntities(context.Background(), text)

	assert.Equal(t, "jane.doe@example.com", entities.Contact["email"])
	assert.Equal(t, "+1 555-123-4567", entities.Contact["phone"])

	// PostgreSQL also matches the shorter SQL keyword by substring.
	assert.ElementsMatch(t, []string{"Python", "React", "SQL", "PostgreSQL"}, entities.Skills)

	assert.Empty(t, entities.Education)
	assert.Empty(t, entities.Experience)
	assert.Empty(t, entities.Certifications)
}

func TestExtractEntitiesSkillsKeepCanonicalCasing(t *testing.T) {
	extractor := NewEntityExtractorService(nil, nil)

	entities := extractor.ExtractEntities(context.Background(), "worked with KUBERNETES and docker daily")

	assert.ElementsMatch(t, []string{"Docker", "Kubernetes"}, entities.Skills)
}

func TestExtractEntitiesTaggerLayer(t *testing.T) {
	t.Run("mentions land in experience", func(t *testing.T) {
		tagger := &fakeTagger{mentions: []string{"Acme Corp", "Jane Doe"}}
		extractor := NewEntityExtractorService(tagger, nil)

		entities := extractor.ExtractEntities(context.Background(), "worked at Acme Corp")

		assert.Equal(t, []string{"Acme Corp", "Jane Doe"}, entities.Experience)
	})

	t.Run("tagger failure leaves other layers intact", func(t *testing.T) {
		tagger := &fakeTagger{err: errors.New("model not loaded")}
		extractor := NewEntityExtractorService(tagger, nil)

		entities := extractor.ExtractEntities(context.Background(), "expert in Python")

		assert.Empty(t, entities.Experience)
		assert.Equal(t, []string{"Python"}, entities.Skills)
	})

	t.Run("tagger input is bounded", func(t *testing.T) {
		tagger := &fakeTagger{}
		extractor := NewEntityExtractorService(tagger, nil)

		long := make([]byte, 5000)
		for i := range long {
			long[i] = 'a'
		}
		extractor.ExtractEntities(context.Background(), string(long))

		assert.Len(t, tagger.gotText, taggerTextLimit)
	})
}

func TestExtractEntitiesGenerativeLayer(t *testing.T) {
	t.Run("non-empty fields replace earlier results", func(t *testing.T) {
		generative := &fakeGenerative{result: &GenerativeEntities{
			Skills:    []string{"Go", "Terraform"},
			Education: []string{"BSc Computer Science"},
		}}
		extractor := NewEntityExtractorService(nil, generative)

		entities := extractor.ExtractEntities(context.Background(), "expert in Python")

		assert.Equal(t, []string{"Go", "Terraform"}, entities.Skills)
		assert.Equal(t, []string{"BSc Computer Science"}, entities.Education)
		// Fields the model left empty keep the earlier layer's values.
		assert.Empty(t, entities.Experience)
	})

	t.Run("generative failure keeps regex results", func(t *testing.T) {
		generative := &fakeGenerative{err: errors.New("quota exceeded")}
		extractor := NewEntityExtractorService(nil, generative)

		entities := extractor.ExtractEntities(context.Background(), "expert in Python")

		assert.Equal(t, []string{"Python"}, entities.Skills)
	})

	t.Run("generative input is bounded", func(t *testing.T) {
		generative := &fakeGenerative{}
		extractor := NewEntityExtractorService(nil, generative)

		long := make([]byte, 10000)
		for i := range long {
			long[i] = 'b'
		}
		extractor.ExtractEntities(context.Background(), string(long))

		assert.Len(t, generative.gotText, generativeTextLimit)
	})
}

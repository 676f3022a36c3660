package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator returns a canned response or error.
type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// ============================================================================
// PROMPT TESTS
// ============================================================================

func TestSummarizePrompt(t *testing.T) {
	p := SummarizePrompt("some long text")
	assert.Contains(t, p, "concise summary")
	assert.True(t, strings.HasSuffix(p, "some long text"))
}

func TestRephrasePromptStyles(t *testing.T) {
	assert.Contains(t, RephrasePrompt("hi", StyleFormal), "formal, professional tone")
	assert.Contains(t, RephrasePrompt("hi", StyleInformal), "casual, conversational tone")
	assert.Contains(t, RephrasePrompt("hi", StyleConcise), "more concise and to the point")
	assert.Contains(t, RephrasePrompt("hi", StyleExtended), "Expand and elaborate")

	// Unknown style falls back to formal.
	assert.Contains(t, RephrasePrompt("hi", "pirate"), "formal, professional tone")
}

func TestTranslatePrompt(t *testing.T) {
	p := TranslatePrompt("hello", "French")
	assert.Contains(t, p, "Translate the following text to French")
	assert.True(t, strings.HasSuffix(p, "hello"))
}

func TestTemplatePrompt(t *testing.T) {
	assert.Contains(t, TemplatePrompt(TemplateMeeting), "Action Items")
	assert.Contains(t, TemplatePrompt(TemplateProject), "Risk Assessment")
	assert.Contains(t, TemplatePrompt(TemplateDaily), "Gratitude Section")
	assert.Contains(t, TemplatePrompt(TemplateResearch), "Bibliography")

	// Unknown type falls back to meeting.
	assert.Contains(t, TemplatePrompt("unknown"), "Agenda Items")
}

func TestRelatedPromptDigest(t *testing.T) {
	pool := []RelatedDoc{
		{ID: "a1", Title: "", Content: "body a", Tags: []string{"x", "y"}},
		{ID: "b2", Title: "Second", Content: strings.Repeat("z", 300)},
	}

	p := RelatedPrompt("target content", pool)
	assert.Contains(t, p, "ID: a1")
	assert.Contains(t, p, "Title: Untitled")
	assert.Contains(t, p, "Tags: x, y")
	assert.Contains(t, p, "ID: b2")

	// Long candidate content is truncated.
	assert.NotContains(t, p, strings.Repeat("z", 201))
	assert.Contains(t, p, strings.Repeat("z", 200))
}

// ============================================================================
// TAG PARSING TESTS
// ============================================================================

func TestParseTags(t *testing.T) {
	tags := ParseTags(` "golang" , testing,  , 'notes', productivity, extra1, extra2`)
	assert.Equal(t, []string{"golang", "testing", "notes", "productivity", "extra1"}, tags)
}

func TestParseTagsDropsOversized(t *testing.T) {
	long := strings.Repeat("a", 40)
	tags := ParseTags("short," + long + ",ok")
	assert.Equal(t, []string{"short", "ok"}, tags)
}

func TestParseTagsEmptyResponse(t *testing.T) {
	assert.Empty(t, ParseTags(""))
	assert.Empty(t, ParseTags(" , , "))
}

func TestMergeTags(t *testing.T) {
	merged := MergeTags([]string{"Work", "golang"}, []string{"work", "Notes", "golang", "ideas"})
	assert.Equal(t, []string{"Work", "golang", "Notes", "ideas"}, merged)
}

// ============================================================================
// RELATED NOTES TESTS
// ============================================================================

func TestFindRelatedFiltersUnknownIDs(t *testing.T) {
	gen := &fakeGenerator{response: "a1, bogus, b2 , c3"}
	pool := []RelatedDoc{{ID: "a1"}, {ID: "b2"}}

	ids, err := FindRelated(context.Background(), gen, "content", pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "b2"}, ids)
}

func TestFindRelatedStripsNoise(t *testing.T) {
	gen := &fakeGenerator{response: `"a1", [b2]`}
	pool := []RelatedDoc{{ID: "a1"}, {ID: "b2"}}

	ids, err := FindRelated(context.Background(), gen, "content", pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "b2"}, ids)
}

func TestFindRelatedCapsAtFive(t *testing.T) {
	gen := &fakeGenerator{response: "n1,n2,n3,n4,n5,n6,n7"}
	pool := make([]RelatedDoc, 0, 7)
	for _, id := range []string{"n1", "n2", "n3", "n4", "n5", "n6", "n7"} {
		pool = append(pool, RelatedDoc{ID: id})
	}

	ids, err := FindRelated(context.Background(), gen, "content", pool)
	require.NoError(t, err)
	assert.Len(t, ids, 5)
}

func TestFindRelatedEmptyPool(t *testing.T) {
	gen := &fakeGenerator{response: "a1"}
	ids, err := FindRelated(context.Background(), gen, "content", nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, gen.prompt)
}

func TestFindRelatedGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	_, err := FindRelated(context.Background(), gen, "content", []RelatedDoc{{ID: "a1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

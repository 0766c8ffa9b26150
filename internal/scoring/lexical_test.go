package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicalSimilarityIdenticalTexts(t *testing.T) {
	text := "senior golang engineer with kubernetes and aws experience"

	score := LexicalSimilarity(text, text)

	assert.InDelta(t, 100.0, score, 0.01)
}

func TestLexicalSimilarityDisjointTexts(t *testing.T) {
	score := LexicalSimilarity(
		"golang kubernetes terraform",
		"pastry baking sourdough",
	)

	assert.Equal(t, 0.0, score)
}

func TestLexicalSimilarityEmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, LexicalSimilarity("", "golang engineer"))
	assert.Equal(t, 0.0, LexicalSimilarity("golang engineer", ""))
	assert.Equal(t, 0.0, LexicalSimilarity("", ""))
	assert.Equal(t, 0.0, LexicalSimilarity("!!! ???", "golang"), "punctuation-only text has no tokens")
}

func TestLexicalSimilarityIsSymmetric(t *testing.T) {
	resume := "python developer building data pipelines with airflow and spark on aws"
	jd := "looking for a data engineer experienced in python, spark and cloud infrastructure"

	forward := LexicalSimilarity(resume, jd)
	backward := LexicalSimilarity(jd, resume)

	assert.Equal(t, forward, backward)
	assert.Greater(t, forward, 0.0)
	assert.Less(t, forward, 100.0)
}

func TestLexicalSimilarityPartialOverlapOrdering(t *testing.T) {
	jd := "golang engineer with kubernetes, docker and postgres"

	closeMatch := LexicalSimilarity("golang developer using kubernetes and docker daily", jd)
	farMatch := LexicalSimilarity("frontend developer using react and typescript", jd)

	assert.Greater(t, closeMatch, farMatch)
}

func TestLexicalSimilarityVocabularyCap(t *testing.T) {
	// Build documents with far more than the vocabulary cap worth of unique
	// terms; the shared high-frequency terms must still dominate.
	var a, b strings.Builder
	for i := 0; i < 1500; i++ {
		a.WriteString(" unique")
		a.WriteString(strings.Repeat("a", i%7+1))
	}
	for i := 0; i < 1500; i++ {
		b.WriteString(" distinct")
		b.WriteString(strings.Repeat("b", i%7+1))
	}
	shared := strings.Repeat(" golang kubernetes", 50)
	a.WriteString(shared)
	b.WriteString(shared)

	score := LexicalSimilarity(a.String(), b.String())

	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestBlend(t *testing.T) {
	assert.InDelta(t, 76.6, Blend(88, 50), 0.001)
	assert.InDelta(t, 0.0, Blend(0, 0), 0.001)
	assert.InDelta(t, 100.0, Blend(100, 100), 0.001)
	assert.InDelta(t, 61.6, Blend(88, 0), 0.001)
}

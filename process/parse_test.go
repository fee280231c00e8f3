package process

import (
	"errors"
	"testing"

	"github.com/ismaeljda/big-brain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const learningResponse = `Voici l'analyse.

## RÉSUMÉ DÉTAILLÉ
Premier paragraphe.

Second paragraphe.

## CONCEPTS CLÉS
- **Attention**: pondère les tokens
- **Embedding** : vecteur dense
**Softmax:** normalise
- sans gras: ignoré

## APPLICATIONS PRATIQUES
Construire un modèle.

## MOTS-CLÉS
[IA, Transformers, attention, NLP, deep learning, GPU, Python, extra]`

const knowledgeResponse = `## Résumé
L'essentiel en deux phrases.

## Points clés
- Point un
- Point - deux
texte libre

### À retenir
Retenir ceci.

## MOTS-CLÉS
- histoire
- France, Europe`

func TestParseSections(t *testing.T) {
	sections := parseSections("intro\n## A\nline 1\n\n  line 2  \n##B##\n\n## C\nlast")

	assert.Equal(t, map[string]string{
		"a": "line 1\nline 2",
		"b": "",
		"c": "last",
	}, sections)
}

func TestParseLearningResponse(t *testing.T) {
	res, err := parseResponse(learningResponse, model.ModeLearning)
	require.NoError(t, err)

	assert.Equal(t, "Premier paragraphe.\nSecond paragraphe.", res.Summary)
	require.NotNil(t, res.LearningNotes)
	assert.Nil(t, res.KnowledgeNotes)
	assert.Equal(t, []model.Concept{
		{Name: "Attention", Definition: "pondère les tokens"},
		{Name: "Embedding", Definition: "vecteur dense"},
		{Name: "Softmax", Definition: "normalise"},
	}, res.Concepts)
	assert.Equal(t, "Construire un modèle.", res.Applications)
	assert.Equal(t, []string{"IA", "Transformers", "attention", "NLP", "deep learning", "GPU", "Python"}, res.Keywords)
	assert.Empty(t, res.MissingSections)
}

func TestParseKnowledgeResponse(t *testing.T) {
	res, err := parseResponse(knowledgeResponse, model.ModeKnowledge)
	require.NoError(t, err)

	assert.Equal(t, "L'essentiel en deux phrases.", res.Summary)
	require.NotNil(t, res.KnowledgeNotes)
	assert.Equal(t, []string{"Point un", "Point - deux"}, res.KeyPoints)
	assert.Equal(t, "Retenir ceci.", res.KeyTakeaway)
	assert.Equal(t, []string{"histoire", "France", "Europe"}, res.Keywords)
	assert.Empty(t, res.MissingSections)
}

func TestParseMissingSections(t *testing.T) {
	res, err := parseResponse("## RÉSUMÉ\nCourt.\n## AUTRE\nx", model.ModeKnowledge)
	require.NoError(t, err)

	assert.Equal(t, "Court.", res.Summary)
	assert.Empty(t, res.KeyPoints)
	assert.NotNil(t, res.KeyPoints)
	assert.Empty(t, res.Keywords)
	assert.Equal(t, []string{sectionKeyPoints, sectionTakeaway, sectionKeywords}, res.MissingSections)
}

func TestParseWithoutSections(t *testing.T) {
	_, err := parseResponse("just some prose", model.ModeLearning)
	assert.True(t, errors.Is(err, ErrUnparseable))
}

func TestParseKeywords(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseKeywords("[a, , b,]"))
	assert.Empty(t, parseKeywords(""))
	assert.Len(t, parseKeywords("1,2,3,4,5,6,7,8,9"), maxKeywords)
}

package process

import (
	"fmt"

	"github.com/ismaeljda/big-brain/model"
)

const learningPrompt = `Tu es un assistant spécialisé dans l'extraction de connaissances éducatives.

Analyse cette vidéo YouTube et crée un résumé structuré pour un apprentissage approfondi:

**Titre**: %s
**Chaîne**: %s
**Description**: %s

Réponds au format suivant:

## RÉSUMÉ DÉTAILLÉ
[Résumé de 3-4 paragraphes expliquant les concepts principaux]

## CONCEPTS CLÉS
- **Concept 1**: Définition courte
- **Concept 2**: Définition courte
- **Concept 3**: Définition courte

## APPLICATIONS PRATIQUES
[Comment utiliser ces connaissances concrètement]

## MOTS-CLÉS
[5-7 mots-clés pour les tags et connexions]

Sois précis, éducatif et orienté apprentissage.`

const knowledgePrompt = `Tu es un assistant spécialisé dans l'extraction d'informations utiles.

Analyse cette vidéo YouTube et crée un résumé concis pour une connaissance générale:

**Titre**: %s
**Chaîne**: %s
**Description**: %s

Réponds au format suivant:

## RÉSUMÉ
[2-3 phrases résumant l'essentiel]

## POINTS CLÉS
- Point important 1
- Point important 2
- Point important 3

## À RETENIR
[L'information la plus utile à retenir]

## MOTS-CLÉS
[3-5 mots-clés pour les tags]

Sois concis, factuel et orienté information utile.`

func buildPrompt(video model.LikedVideo, mode model.Mode) string {
	tmpl := knowledgePrompt
	if mode == model.ModeLearning {
		tmpl = learningPrompt
	}

	return fmt.Sprintf(tmpl, video.Title, video.Channel, video.Description)
}

package ai

import (
	"fmt"
	"strings"

	"github.com/politiekmatcher/core/internal/models"
)

const classifySystemPrompt = `Je bent een classificatiemodel voor Nederlandse politieke meningen.
Je krijgt een politieke stelling en de mening van een burger over die stelling.
Bepaal of de burger het eens, oneens of neutraal is ten opzichte van de stelling.
Antwoord uitsluitend met JSON in dit formaat:
{"label": "agree" | "neutral" | "disagree", "confidence": 0.0-1.0}`

func buildClassifyPrompt(statement, opinion string) string {
	return fmt.Sprintf("Stelling: %s\n\nMening van de burger: %s", statement, opinion)
}

const dimensionSystemPrompt = `Je bent een analysemodel voor Nederlandse politieke teksten.
Scoor de tekst op zeven politieke assen, elk als een getal tussen -1.0 en 1.0:
- economic: -1.0 = links/herverdeling, 1.0 = rechts/markt
- social: -1.0 = progressief, 1.0 = conservatief
- environmental: -1.0 = groen/klimaat prioriteit, 1.0 = groei prioriteit
- immigration: -1.0 = ruimhartig, 1.0 = restrictief
- europe: -1.0 = pro-EU, 1.0 = eurosceptisch
- authority: -1.0 = burgerlijke vrijheden, 1.0 = orde en gezag
- institutionality: -1.0 = vertrouwen in instituties, 1.0 = anti-establishment
Een as die de tekst niet raakt scoor je 0.0.
Antwoord uitsluitend met JSON:
{"economic": 0.0, "social": 0.0, "environmental": 0.0, "immigration": 0.0, "europe": 0.0, "authority": 0.0, "institutionality": 0.0}`

func buildDimensionPrompt(text string) string {
	return fmt.Sprintf("Tekst: %s", text)
}

const explanationSystemPrompt = `Je bent een neutrale uitlegger voor een Nederlandse stemhulp.
Je legt uit waarom een gebruiker een bepaald matchpercentage heeft met een politieke partij,
op basis van de stellingen waar ze het wel en niet over eens zijn.
Schrijf in het Nederlands, begrijpelijk en zonder partijdige lading.
Noem concrete stellingen. Maximaal vier alinea's.`

func buildExplanationPrompt(input ExplanationInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Partij: %s\nMatchpercentage: %.0f%%\nAantal stellingen: %d\n\n",
		input.PartyName, input.MatchPercentage, len(input.Statements))

	b.WriteString("Per stelling:\n")
	for _, s := range input.Statements {
		fmt.Fprintf(&b, "- Stelling: %s\n  Gebruiker: %s, Partij: %s, Score: %.0f\n",
			s.Statement, dutchStance(s.UserStance), dutchStance(s.PartyStance.Normalize()), s.FinalScore)
	}

	b.WriteString("\nLeg uit waarom dit matchpercentage past bij deze antwoorden.")
	return b.String()
}

func dutchStance(s models.Stance) string {
	switch s {
	case models.StanceAgree:
		return "eens"
	case models.StanceDisagree:
		return "oneens"
	}
	return "neutraal"
}

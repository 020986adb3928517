package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"crm-backend/models"
	"crm-backend/utils"

	"github.com/sony/gobreaker"
)

// Valeurs de repli quand le service de scoring est injoignable, trop lent ou
// renvoie une réponse inexploitable. L'enrichissement est best-effort : un
// échec ne remonte jamais à l'appelant.
const (
	FallbackScore     = 50
	FallbackAction    = "Planifier un appel de suivi dans les 48h."
	FallbackCrossSell = "Analyser les besoins complémentaires du client."

	// Suggérée sans appel au service quand le contact n'a aucun contrat
	PremiereSouscription = "Proposer une première souscription selon le profil client."

	FallbackRecommandations = "• Relancer les prospects inactifs\n• Optimiser le suivi des négociations\n• Analyser les sources de leads performantes"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"
	defaultTimeout = 3 * time.Second
)

// Client encapsule les appels au service de scoring IA. Chaque méthode
// renvoie toujours une valeur : soit la réponse du service, soit le repli.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient construit un client depuis les variables d'environnement
// (OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_TIMEOUT_SECONDS).
func NewClient() *Client {
	timeout := defaultTimeout
	if raw := os.Getenv("OPENAI_TIMEOUT_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			timeout = time.Duration(seconds) * time.Second
		}
	}
	return NewClientWithConfig(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_BASE_URL"), timeout)
}

// NewClientWithConfig construit un client avec une configuration explicite.
// baseURL vide = API OpenAI publique.
func NewClientWithConfig(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "scoring-ia",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			utils.LogWarning(fmt.Sprintf("Circuit breaker %s: %s -> %s", name, from.String(), to.String()))
		},
	})

	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      defaultModel,
		timeout:    timeout,
		httpClient: &http.Client{},
		breaker:    breaker,
	}
}

// EngagementScore calcule le score d'engagement (1-100) d'un contact à partir
// de ses interactions. Réponse non numérique ou hors bornes : repli 50 / clamp.
func (c *Client) EngagementScore(ctx context.Context, contact models.Contact, interactions []models.Interaction) int {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyse ce contact d'assurance et calcule un score d'engagement de 1 à 100.\n\n")
	fmt.Fprintf(&sb, "Contact: %s %s, %s, statut: %s\n", contact.Nom, contact.Prenom, contact.Regime, contact.Statut)
	if contact.DateDerniereInteraction != nil {
		fmt.Fprintf(&sb, "Dernière interaction: %s\n", contact.DateDerniereInteraction.Format(time.RFC3339))
	}
	sb.WriteString("\nInteractions récentes:\n")
	for _, i := range interactions {
		fmt.Fprintf(&sb, "- %s: %s (%s)\n", i.Type, i.Contenu, i.DateInteraction.Format("2006-01-02"))
	}
	sb.WriteString("\nRetourne uniquement un nombre entre 1 et 100.")

	raw, err := c.complete(ctx, sb.String(), 10, 0.3)
	if err != nil {
		utils.LogError(err, "Erreur calcul score IA")
		return FallbackScore
	}

	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return FallbackScore
	}
	if score < 1 {
		return 1
	}
	if score > 100 {
		return 100
	}
	return score
}

// ActionSuggestion suggère la prochaine action commerciale pour un contact
func (c *Client) ActionSuggestion(ctx context.Context, contact models.Contact, interactions []models.Interaction) string {
	var sb strings.Builder
	sb.WriteString("Tu es un expert courtier en assurance. Suggère la meilleure action suivante pour ce contact.\n\n")
	fmt.Fprintf(&sb, "Contact: %s %s\nRégime: %s\nStatut: %s\nScore engagement: %d/100\n",
		contact.Nom, contact.Prenom, contact.Regime, contact.Statut, contact.ScoreEngagement)
	sb.WriteString("\nDernières interactions:\n")
	for idx, i := range interactions {
		if idx >= 3 {
			break
		}
		resume := i.Resultat
		if resume == "" {
			resume = i.Contenu
		}
		fmt.Fprintf(&sb, "- %s: %s\n", i.Type, resume)
	}
	sb.WriteString("\nRéponds en 1-2 phrases maximum avec une action concrète.")

	suggestion, err := c.complete(ctx, sb.String(), 100, 0.7)
	if err != nil {
		utils.LogError(err, "Erreur suggestion IA")
		return FallbackAction
	}
	return strings.TrimSpace(suggestion)
}

// CrossSellOpportunity identifie une opportunité de vente croisée à partir des
// contrats souscrits. Sans contrat, la suggestion de première souscription est
// renvoyée directement, sans appel au service.
func (c *Client) CrossSellOpportunity(ctx context.Context, contact models.Contact, contrats []models.ContratClient) string {
	if len(contrats) == 0 {
		return PremiereSouscription
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Client %s ayant souscrit:\n", contact.Regime)
	for _, contrat := range contrats {
		fmt.Fprintf(&sb, "- %s (%s)\n", contrat.Produit.NomProduit, contrat.Produit.Categorie)
	}
	sb.WriteString("\nQuelle opportunité de cross-selling recommandes-tu ?\nRéponds en 1 phrase.")

	suggestion, err := c.complete(ctx, sb.String(), 80, 0.7)
	if err != nil {
		utils.LogError(err, "Erreur cross-sell IA")
		return FallbackCrossSell
	}
	return strings.TrimSpace(suggestion)
}

// DashboardRecommendations produit trois recommandations prioritaires à partir
// des indicateurs du dashboard
func (c *Client) DashboardRecommendations(ctx context.Context, stats models.KPIs) string {
	prompt := fmt.Sprintf(`Analyse ces statistiques CRM et donne 3 recommandations prioritaires:

- Nouveaux leads (7j): %d
- Taux conversion: %d%%
- Clients actifs: %d
- Leads NRP à recycler: %d

Format: 3 puces courtes et actionables.`,
		stats.NouveauxLeads, stats.TauxConversion, stats.ClientsActifs, stats.LeadsNRP)

	recommendations, err := c.complete(ctx, prompt, 200, 0.7)
	if err != nil {
		utils.LogError(err, "Erreur recommandations IA")
		return FallbackRecommandations
	}
	return strings.TrimSpace(recommendations)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete envoie un prompt au service et renvoie le texte de la première
// réponse. Chaque appel porte son propre timeout ; le circuit breaker coupe
// court quand le service est durablement en échec.
func (c *Client) complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("scoring: marshal request: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("scoring: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("scoring: call service: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return nil, fmt.Errorf("scoring: service returned %d: %s", resp.StatusCode, string(body))
		}

		var parsed chatResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return nil, fmt.Errorf("scoring: decode response: %w", err)
		}
		if len(parsed.Choices) == 0 {
			return nil, fmt.Errorf("scoring: empty response")
		}
		return parsed.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

package appcmd

import (
	"context"
	"fmt"
	"strings"
)

// Equipment is a row from the application inventory surfaced by a command.
type Equipment struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Inventory answers structured equipment queries on behalf of commands.
type Inventory interface {
	Search(ctx context.Context, equipmentType, status string, limit int) ([]Equipment, error)
}

// CommandResult is what a handled application command returns.
type CommandResult struct {
	Response string      `json:"response"`
	Results  []Equipment `json:"results"`
}

const defaultLimit = 10

// Commander turns natural-language application commands into inventory
// queries. It never calls a text-generation backend.
type Commander struct {
	inventory Inventory
}

func NewCommander(inventory Inventory) *Commander {
	return &Commander{inventory: inventory}
}

var typeKeywords = map[string]string{
	"ordinateur": "computer",
	"pc":         "computer",
	"poste":      "computer",
	"écran":      "monitor",
	"moniteur":   "monitor",
	"imprimante": "printer",
	"serveur":    "server",
	"téléphone":  "phone",
	"switch":     "network",
	"routeur":    "network",
}

var statusKeywords = map[string]string{
	"disponible": "available",
	"libre":      "available",
	"utilisé":    "in_use",
	"attribué":   "in_use",
	"panne":      "broken",
	"cassé":      "broken",
	"réparation": "repair",
	"stock":      "stock",
}

// NaturalLanguageSearch extracts an equipment type and status from the
// message and runs the matching inventory query.
func (c *Commander) NaturalLanguageSearch(ctx context.Context, message string) (*CommandResult, error) {
	lower := strings.ToLower(message)

	var equipmentType, status string
	for keyword, t := range typeKeywords {
		if strings.Contains(lower, keyword) {
			equipmentType = t
			break
		}
	}
	for keyword, s := range statusKeywords {
		if strings.Contains(lower, keyword) {
			status = s
			break
		}
	}

	results, err := c.inventory.Search(ctx, equipmentType, status, defaultLimit)
	if err != nil {
		return nil, fmt.Errorf("inventory search: %w", err)
	}

	return &CommandResult{
		Response: formatResponse(results, equipmentType, status),
		Results:  results,
	}, nil
}

func formatResponse(results []Equipment, equipmentType, status string) string {
	if len(results) == 0 {
		return "Je n'ai trouvé aucun équipement correspondant à votre demande."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "J'ai trouvé %d équipement(s)", len(results))
	if equipmentType != "" {
		fmt.Fprintf(&b, " de type %s", equipmentType)
	}
	if status != "" {
		fmt.Fprintf(&b, " avec le statut %s", status)
	}
	b.WriteString(" :\n\n")
	for i, eq := range results {
		fmt.Fprintf(&b, "%d. **%s** (%s) - %s\n", i+1, eq.Name, eq.Type, eq.Status)
	}
	return b.String()
}

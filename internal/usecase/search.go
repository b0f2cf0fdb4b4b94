package usecase

import (
	"slices"
	"strings"

	"github.com/xavierca1/seerah-hajj/internal/entity"
)

// Matches diz se o item contém o termo de busca. Termo vazio casa com tudo.
// Leads: nome, e-mail e cidade sem distinção de caixa; telefone por substring literal.
func Matches(item entity.Item, q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	lower := strings.ToLower(q)

	switch it := item.(type) {
	case *entity.DailyTip:
		return containsFold(lower, it.Title, it.Description, it.Category)
	case *entity.Webinar:
		return containsFold(lower, it.Title, it.Description)
	case *entity.PDFGuide:
		return containsFold(lower, it.Title, it.Description)
	case *entity.Lead:
		return containsFold(lower, it.FullName, it.Email, it.CityCountry) || strings.Contains(it.Phone, q)
	}
	return false
}

// FilterContent aplica busca textual e filtro de tags (qualquer uma).
func FilterContent[T entity.Content](items []T, q string, tags []string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.Meta().HasAnyTag(tags) && Matches(it, q) {
			out = append(out, it)
		}
	}
	return out
}

func collectTags[T entity.Content](into map[string]struct{}, items []T) {
	for _, it := range items {
		for _, tag := range it.Meta().Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				into[tag] = struct{}{}
			}
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func containsFold(lowerQ string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerQ) {
			return true
		}
	}
	return false
}

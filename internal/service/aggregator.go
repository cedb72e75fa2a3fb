package service

import (
	"github.com/GTDGit/showcase_api/internal/models"
)

// Aggregate computes portfolio statistics over every document in docs.
func Aggregate(docs []models.ProductDocument) models.PortfolioStats {
	stats := models.PortfolioStats{
		TotalProducts: len(docs),
		TemplateUsage: map[string]int{},
	}

	for i := range docs {
		doc := &docs[i]
		if doc.EffectiveStatus() == models.StatusPublished {
			stats.ActiveProducts++
		}
		if doc.TemplateName != nil && *doc.TemplateName != "" {
			stats.TemplateUsage[*doc.TemplateName]++
		}
		for _, rec := range doc.Analytics {
			p := models.ProjectAnalytics(rec)
			stats.TotalViews += p.Views
			stats.TotalClicks += p.Clicks
			stats.TotalEmailClicks += p.EmailClicks
		}
	}

	stats.AverageEngagementRate = models.EngagementRate(stats.TotalViews, stats.TotalClicks, stats.TotalEmailClicks)
	return stats
}

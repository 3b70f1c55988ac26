package userControllers

import (
	"barhop/database"
	"barhop/models"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// MyStats summarizes the requester's recent check-in history: totals,
// unique bars/beers, a 7-day histogram and the five most recent rows.
func MyStats(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	db := database.Database.Db

	var rows []models.Checkin
	if err := db.Where("user_id = ?", userId).
		Order("created_at DESC").
		Limit(500).
		Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	uniqueBars := make(map[uint]bool)
	uniqueBeers := make(map[string]bool)
	for _, r := range rows {
		uniqueBars[r.BarID] = true
		if name := strings.TrimSpace(r.BeerName); name != "" {
			uniqueBeers[name] = true
		}
	}

	// Last 7 days, oldest bucket first
	today := time.Now().Truncate(24 * time.Hour)
	type dayCount struct {
		D time.Time `json:"d"`
		C int       `json:"c"`
	}
	byDay := make([]dayCount, 7)
	for i := 0; i < 7; i++ {
		byDay[i] = dayCount{D: today.AddDate(0, 0, i-6)}
	}
	for _, r := range rows {
		day := r.CreatedAt.Truncate(24 * time.Hour)
		idx := int(day.Sub(byDay[0].D).Hours() / 24)
		if idx >= 0 && idx < 7 {
			byDay[idx].C++
		}
	}

	recent := make([]fiber.Map, 0, 5)
	for i, r := range rows {
		if i == 5 {
			break
		}
		recent = append(recent, fiber.Map{
			"id":         r.ID,
			"bar_id":     r.BarID,
			"beer_name":  r.BeerName,
			"overall":    r.Overall,
			"created_at": r.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"total":       len(rows),
		"uniqueBars":  len(uniqueBars),
		"uniqueBeers": len(uniqueBeers),
		"byDay":       byDay,
		"recent":      recent,
	})
}

// MyTopBars ranks the requester's bars by visit count, then average overall,
// returning the top five.
func MyTopBars(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	db := database.Database.Db

	var rows []models.Checkin
	if err := db.Preload("Bar").
		Where("user_id = ?", userId).
		Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	type barStat struct {
		barID   uint
		name    string
		address string
		count   int
		sum     int
	}
	stats := make(map[uint]*barStat)
	for _, r := range rows {
		s, ok := stats[r.BarID]
		if !ok {
			s = &barStat{barID: r.BarID, name: r.Bar.Name, address: r.Bar.Address}
			stats[r.BarID] = s
		}
		s.count++
		if r.Overall != nil {
			s.sum += *r.Overall
		}
	}

	ranked := make([]*barStat, 0, len(stats))
	for _, s := range stats {
		ranked = append(ranked, s)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].sum*ranked[j].count > ranked[j].sum*ranked[i].count
	})

	top := make([]fiber.Map, 0, 5)
	for i, s := range ranked {
		if i == 5 {
			break
		}
		avg := 0
		if s.count > 0 {
			avg = int(float64(s.sum)/float64(s.count) + 0.5)
		}
		top = append(top, fiber.Map{
			"bar_id":  s.barID,
			"name":    s.name,
			"address": s.address,
			"count":   s.count,
			"avg":     avg,
		})
	}

	return c.JSON(fiber.Map{"top": top})
}

// MyCheckins returns the requester's 50 newest check-ins with their bars.
func MyCheckins(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	db := database.Database.Db

	var rows []models.Checkin
	if err := db.Preload("Bar").
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Limit(50).
		Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{
			"id":         r.ID,
			"beer_name":  r.BeerName,
			"ai_review":  r.AIReview,
			"overall":    r.Overall,
			"created_at": r.CreatedAt,
			"bar_id":     r.BarID,
			"bar": fiber.Map{
				"name":    r.Bar.Name,
				"address": r.Bar.Address,
			},
		})
	}
	return c.JSON(fiber.Map{"rows": out})
}

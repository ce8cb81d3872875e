package service

import (
	"time"

	"arctic_mining/internal/domain"
)

const (
	secondsPerDay = 86400

	// HarvestCooldown is the anti-spam floor between harvests.
	HarvestCooldown = 10 * time.Second
)

// BaseDailyYield sums the catalog daily yield over owned equipment. Unknown
// product ids are skipped silently so removing an item from the catalog does
// not break existing inventories.
func BaseDailyYield(inventory map[string]int) float64 {
	var total float64
	for id, count := range inventory {
		p, ok := domain.Products[id]
		if !ok {
			continue
		}
		total += p.DailyYield * float64(count)
	}
	return total
}

// EffectiveDailyYield applies the tier mining bonus to the base yield.
func EffectiveDailyYield(inventory map[string]int, tier domain.VIPTier) float64 {
	return BaseDailyYield(inventory) * tier.MiningBonus
}

// AccruedGain pro-rates the effective daily yield linearly over the elapsed
// window. No compounding.
func AccruedGain(dailyYield float64, elapsed time.Duration) float64 {
	return dailyYield / secondsPerDay * elapsed.Seconds()
}

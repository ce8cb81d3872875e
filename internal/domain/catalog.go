package domain

// Product is one purchasable piece of mining equipment.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DailyYield  float64 `json:"daily_income"`
	Description string  `json:"desc"`
}

// VIPTier is a referral-count-derived bracket. Tiers are derived on demand
// and never stored on the account.
type VIPTier struct {
	Level             int     `json:"level"`
	RequiredReferrals int     `json:"required"`
	FeeRate           float64 `json:"fee"`
	MiningBonus       float64 `json:"mining_bonus"`
}

// VIPStatus is a tier plus the live referral count it was derived from.
type VIPStatus struct {
	VIPTier
	ReferralCount int `json:"referral_count"`
}

// Products is the static equipment catalog, loaded once and never mutated.
var Products = map[string]Product{
	"miner_v1": {
		ID: "miner_v1", Name: "Module Cryogénique Alpha",
		Price: 20, DailyYield: 5, Description: "Refroidissement de base.",
	},
	"nitrogen_turb": {
		ID: "nitrogen_turb", Name: "Turbine à Azote Liquide",
		Price: 50, DailyYield: 12.50, Description: "Flux constant haute pression.",
	},
	"quantum_node": {
		ID: "quantum_node", Name: "Processeur Polaire Quantique",
		Price: 100, DailyYield: 30, Description: "Technologie zéro absolu.",
	},
	"arctic_server": {
		ID: "arctic_server", Name: "Data Center Glaciaire Omega",
		Price: 500, DailyYield: 180, Description: "Infrastructure ultime.",
	},
}

// VIPTiers is ordered lowest to highest. Selection scans from the top so the
// highest satisfied tier wins.
var VIPTiers = []VIPTier{
	{Level: 1, RequiredReferrals: 0, FeeRate: 0.10, MiningBonus: 1.00},
	{Level: 2, RequiredReferrals: 2, FeeRate: 0.08, MiningBonus: 1.05},
	{Level: 3, RequiredReferrals: 5, FeeRate: 0.06, MiningBonus: 1.10},
	{Level: 4, RequiredReferrals: 10, FeeRate: 0.05, MiningBonus: 1.20},
	{Level: 5, RequiredReferrals: 30, FeeRate: 0.03, MiningBonus: 1.50},
}

// SelectTier returns the highest tier whose referral requirement is met.
func SelectTier(referralCount int) VIPTier {
	for i := len(VIPTiers) - 1; i >= 0; i-- {
		if referralCount >= VIPTiers[i].RequiredReferrals {
			return VIPTiers[i]
		}
	}
	return VIPTiers[0]
}

package services

// Plan describes one purchasable subscription option.
type Plan struct {
	Amount   float64  `json:"amount"`
	Name     string   `json:"name"`
	Features []string `json:"features"`
}

const (
	PlanWeekly  = "weekly"
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// SubscriptionPlans is the public plan catalog. Every plan upgrades the
// buyer to the premium tier; they differ only in billing period.
var SubscriptionPlans = map[string]Plan{
	PlanWeekly: {
		Amount:   4.99,
		Name:     "Weekly Premium",
		Features: []string{"Unlimited chats", "Priority support"},
	},
	PlanMonthly: {
		Amount:   14.99,
		Name:     "Monthly Premium",
		Features: []string{"Unlimited chats", "Priority support", "Advanced models"},
	},
	PlanYearly: {
		Amount:   99.99,
		Name:     "Yearly Premium",
		Features: []string{"Unlimited chats", "Priority support", "Advanced models", "2 months free"},
	},
}

func IsValidPlan(plan string) bool {
	_, ok := SubscriptionPlans[plan]
	return ok
}

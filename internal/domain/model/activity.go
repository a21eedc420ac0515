package model

// Activity is a reward-catalog row: a defined task carrying a fixed token
// reward. Read-only reference data seeded at migration.
type Activity struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Category  string    `json:"category"`
	Reward    int       `json:"reward"`
	ProofType ProofType `json:"proof_type"`
}

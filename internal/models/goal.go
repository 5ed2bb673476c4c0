package models

// Goal is a candidate objective inferred from the shape of a user's accounts.
type Goal string

const (
	GoalPayDownDebt    Goal = "pay_down_debt"
	GoalSaveBigGoal    Goal = "save_big_goal"
	GoalStartInvesting Goal = "start_investing"
)

// SavingsGoal describes progress toward the primary savings target.
type SavingsGoal struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	Target  float64 `json:"target"`
	Percent int     `json:"percent"`
}

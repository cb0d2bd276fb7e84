package core

// GoalTable maps each goal-checked activity to its daily threshold, in
// minutes or repetitions. Fixed at process start; not user-editable.
type GoalTable map[Activity]float64

// DefaultGoals returns the static daily goal table.
func DefaultGoals() GoalTable {
	return GoalTable{
		ActivityRunning:       20,
		ActivityFlexoes:       36,
		ActivityAbdominais:    135,
		ActivityAgachamento:   3,
		ActivityStudyTI:       30,
		ActivityStudyConcurso: 60,
		ActivityMeditation:    5,
	}
}

// Met reports whether the realized value satisfies the activity's goal.
func (g GoalTable) Met(a Activity, realized float64) bool {
	return realized >= g[a]
}

// Missed returns the activities whose realized totals fall short of their
// goals, in report column order.
func (g GoalTable) Missed(s DailySummary) []Activity {
	var missed []Activity
	for _, a := range TrackedActivities {
		if s[a] < g[a] {
			missed = append(missed, a)
		}
	}
	return missed
}

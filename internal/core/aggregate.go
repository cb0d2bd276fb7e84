package core

// DailySummary maps each goal-checked activity to the sum of its counted
// amounts across all records of one day. Derived on demand, never stored.
type DailySummary map[Activity]float64

// NewDailySummary returns an all-zero summary covering every tracked
// activity.
func NewDailySummary() DailySummary {
	s := make(DailySummary, len(TrackedActivities))
	for _, a := range TrackedActivities {
		s[a] = 0
	}
	return s
}

// AggregateByDate folds records into per-day summaries in a single pass.
// An activity's amount is counted only when its done flag is set; the home
// sub-activities are gated on the shared home flag. The result is a fresh
// mapping on every call.
func AggregateByDate(records []Record) map[DateKey]DailySummary {
	aggregated := make(map[DateKey]DailySummary)
	for _, rec := range records {
		key := rec.Key()
		summary, ok := aggregated[key]
		if !ok {
			summary = NewDailySummary()
			aggregated[key] = summary
		}
		if rec.Running.Done {
			summary[ActivityRunning] += rec.Running.Amount
		}
		if rec.Home.Done {
			summary[ActivityFlexoes] += rec.Home.Flexoes
			summary[ActivityAbdominais] += rec.Home.Abdominais
			summary[ActivityAgachamento] += rec.Home.Agachamento
		}
		if rec.StudyTI.Done {
			summary[ActivityStudyTI] += rec.StudyTI.Amount
		}
		if rec.StudyConcurso.Done {
			summary[ActivityStudyConcurso] += rec.StudyConcurso.Amount
		}
		if rec.Meditation.Done {
			summary[ActivityMeditation] += rec.Meditation.Amount
		}
	}
	return aggregated
}

// AggregateOneDay is the single-key specialization used by the daily report
// and the reminder check. It returns an all-zero summary when no records
// match the key.
func AggregateOneDay(records []Record, key DateKey) DailySummary {
	var matched []Record
	for _, rec := range records {
		if rec.Key() == key {
			matched = append(matched, rec)
		}
	}
	if summary, ok := AggregateByDate(matched)[key]; ok {
		return summary
	}
	return NewDailySummary()
}

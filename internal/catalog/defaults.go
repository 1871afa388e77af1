package catalog

import "sync"

// Objective keys of the planner catalog.
const (
	ExerciseDone      = "exercise_done"
	ExerciseMinutes   = "exercise_minutes"
	HealthyMeal       = "healthy_meal"
	WaterLiters       = "water_liters"
	OvertimeHours     = "overtime_hours"
	MeditationMinutes = "meditation_minutes"
	ReadingPages      = "reading_pages"

	ENTSelf                 = "ent_self"
	ENTPartner              = "ent_partner"
	DentistSelf             = "dentist_self"
	DentistPartner          = "dentist_partner"
	PulmonologistPartner    = "pulmonologist_partner"
	BracesBoth              = "braces_both"
	RhinoseptoplastyConsult = "rhinoseptoplasty_consult"

	FinanceApp  = "finance_app"
	ProgressApp = "progress_app"

	StartingBalance = "starting_balance"
)

// Project status options.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
)

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// ProjectStatus is the enum shared by project objectives. The Spanish
// tokens are what older planner files contain.
func ProjectStatus() Choice {
	return Choice{
		Options:  []string{StatusPending, StatusInProgress, StatusCompleted},
		Terminal: StatusCompleted,
		Aliases: map[string]string{
			"Pendiente":    StatusPending,
			"En Curso":     StatusInProgress,
			"Completado ✅": StatusCompleted,
			"Completado":   StatusCompleted,
		},
	}
}

// Default returns the planner catalog. It is built once per process and must
// be treated as read-only.
func Default() *Catalog {
	defaultOnce.Do(func() {
		healthFlag := Flag{Snapshot: true}
		defaultCatalog = MustNew(
			Objective{Key: ExerciseDone, Label: "Exercise done", Group: GroupDaily, Kind: Flag{}},
			Objective{Key: ExerciseMinutes, Label: "Exercise minutes", Group: GroupDaily,
				Kind: Quantity{Step: 15, Goal: Goal{Shape: MonthlyTotal, Target: 15 * 60}}},
			Objective{Key: HealthyMeal, Label: "Healthy meal", Group: GroupDaily, Kind: Flag{}},
			Objective{Key: WaterLiters, Label: "Water (liters)", Group: GroupDaily,
				Kind: Quantity{Step: 0.5, Goal: Goal{Shape: DailyAverage, Target: 2.0}}},
			Objective{Key: OvertimeHours, Label: "Overtime hours", Group: GroupDaily,
				Kind: Quantity{Step: 0.5, Goal: Goal{Shape: MonthlyTotal, Target: 40}}},
			Objective{Key: MeditationMinutes, Label: "Meditation minutes", Group: GroupDaily,
				Kind: Quantity{Step: 5, Goal: Goal{Shape: DailyAverage, Target: 10}}},
			Objective{Key: ReadingPages, Label: "Pages read", Group: GroupDaily,
				Kind: Quantity{Step: 10, Integer: true, Goal: Goal{Shape: MonthlyTotal, Target: 30 * 10}}},

			Objective{Key: ENTSelf, Label: "ENT (self)", Group: GroupHealth, Kind: healthFlag},
			Objective{Key: ENTPartner, Label: "ENT (partner)", Group: GroupHealth, Kind: healthFlag},
			Objective{Key: DentistSelf, Label: "Dentist (self)", Group: GroupHealth, Kind: healthFlag},
			Objective{Key: DentistPartner, Label: "Dentist (partner)", Group: GroupHealth, Kind: healthFlag},
			Objective{Key: PulmonologistPartner, Label: "Pulmonologist (partner)", Group: GroupHealth, Kind: healthFlag},
			Objective{Key: BracesBoth, Label: "Braces (ask - both)", Group: GroupHealth, Kind: healthFlag},
			Objective{Key: RhinoseptoplastyConsult, Label: "Rhinoseptoplasty (consult)", Group: GroupHealth, Kind: healthFlag},

			Objective{Key: FinanceApp, Label: "Income and expenses app", Group: GroupProject, Kind: ProjectStatus()},
			Objective{Key: ProgressApp, Label: "Personal progress app", Group: GroupProject, Kind: ProjectStatus()},

			Objective{Key: StartingBalance, Label: "Starting balance", Group: GroupFinance, Kind: Quantity{Step: 1}},
		)
	})
	return defaultCatalog
}

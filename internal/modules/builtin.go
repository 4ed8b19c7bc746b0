package modules

import (
	"github.com/2beens/athletepro/internal/userdata"
)

// builtin holds every module the app ships with.
var builtin = map[string]Factory{
	"dashboard": func() Module {
		return Module{
			Title:    "Performance Dashboard",
			Subtitle: "Full monitoring of your progress and current status",
			Actions: []Action{
				{Label: "New workout", Command: "log workouts exercise=<name> sets=<n> reps=<n> load=<kg>"},
				{Label: "Export data", Command: "export"},
			},
			Series: []userdata.SeriesName{userdata.SeriesWorkouts, userdata.SeriesRecovery, userdata.SeriesCycle},
		}
	},
	"calculators": func() Module {
		return Module{
			Title:    "Performance Calculators",
			Subtitle: "Tools for precise training math",
			Actions: []Action{
				{Label: "One-rep max", Command: "calc 1rm <weight> <reps>"},
				{Label: "Wilks score", Command: "calc wilks <total>"},
				{Label: "Macros", Command: "calc macros <goal>"},
			},
			Series: []userdata.SeriesName{userdata.SeriesConversions},
		}
	},
	"steroid-info": func() Module {
		return Module{
			Title:    "Compound Reference",
			Subtitle: "Reference data on anabolic compounds",
		}
	},
	"cycle-planner": func() Module {
		return Module{
			Title:    "Cycle Planner",
			Subtitle: "Full schedule of compound use",
			Actions: []Action{
				{Label: "Log injection", Command: "log cycle compound=<name> doseMg=<mg> site=<site>"},
				{Label: "Dose volumes", Command: "calc dose <weeklyMg> <mgPerMl>"},
			},
			Series: []userdata.SeriesName{userdata.SeriesCycle},
		}
	},
	"bloodwork": func() Module {
		return Module{
			Title:    "Bloodwork Monitoring",
			Subtitle: "Track health markers during cycles",
			Actions: []Action{
				{Label: "Add marker", Command: "log bloodwork marker=<name> value=<v> unit=<unit>"},
			},
			Series: []userdata.SeriesName{userdata.SeriesBloodwork},
		}
	},
	"workout-planner": func() Module {
		return Module{
			Title:    "Workout Planner",
			Subtitle: "Build periodized training programs",
			Actions: []Action{
				{Label: "New program", Command: "log programs name=<name> weeks=<n>"},
			},
			Series: []userdata.SeriesName{userdata.SeriesPrograms},
		}
	},
	"workout-log": func() Module {
		return Module{
			Title:    "Workout Log",
			Subtitle: "Keep track of every session",
			Actions: []Action{
				{Label: "New workout", Command: "log workouts exercise=<name> sets=<n> reps=<n> load=<kg>"},
				{Label: "Exercise history", Command: "history <exercise>"},
			},
			Series: []userdata.SeriesName{userdata.SeriesWorkouts},
		}
	},
	"nutrition": func() Module {
		return Module{
			Title:    "Nutrition Diary",
			Subtitle: "Diet and supplementation tracking",
			Actions: []Action{
				{Label: "New meal", Command: "log nutrition meal=<name> kcal=<n> protein=<g>"},
			},
			Series: []userdata.SeriesName{userdata.SeriesNutrition},
		}
	},
	"recovery": func() Module {
		return Module{
			Title:    "Recovery Monitoring",
			Subtitle: "Follow your recovery and general health",
			Actions: []Action{
				{Label: "Report recovery", Command: "log recovery sleepHours=<h> score=<0-100>"},
				{Label: "Report pain", Command: "log injuries level=<1-10> location=<where>"},
			},
			Series: []userdata.SeriesName{userdata.SeriesRecovery, userdata.SeriesInjuries},
		}
	},
	"reports": func() Module {
		return Module{
			Title:    "Reports and Analysis",
			Subtitle: "Detailed analysis of your progress",
			Actions: []Action{
				{Label: "Export report", Command: "export --out <file>"},
				{Label: "Weekly stats", Command: "stats"},
			},
			Series: userdata.AllSeries(),
		}
	},
	"community": func() Module {
		return Module{
			Title:    "Social Profile",
			Subtitle: "Connect with other athletes",
		}
	},
}

// DefaultRegistry returns a registry with every built-in module.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for id, factory := range builtin {
		if err := r.Register(id, factory); err != nil {
			// ids in builtin are unique map keys
			panic(err)
		}
	}
	return r
}

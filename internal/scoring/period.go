package scoring

// PeriodMonthsDefault is assumed when the income-statement period parameter
// is unset or unrecognized.
const PeriodMonthsDefault = 12

// periodMonthsByLabel maps the periodoEstadoResultados parameter labels to
// the number of months the statement covers.
var periodMonthsByLabel = map[string]int{
	"Mensual":    1,
	"Trimestral": 3,
	"Semestral":  6,
	"Anual":      12,
}

// PeriodMonths resolves a period label to months, defaulting to a year.
func PeriodMonths(label string) int {
	if m, ok := periodMonthsByLabel[label]; ok {
		return m
	}
	return PeriodMonthsDefault
}

package formula

type rirRPE struct {
	rir float64
	rpe float64
}

var rirRPETable = []rirRPE{
	{rir: 0, rpe: 10},
	{rir: 0.5, rpe: 9.5},
	{rir: 1, rpe: 9},
	{rir: 1.5, rpe: 8.5},
	{rir: 2, rpe: 8},
	{rir: 3, rpe: 7},
	{rir: 4, rpe: 6},
}

// RIRToRPE looks up the RPE for the given reps in reserve.
// The bool is false for values outside the table.
func RIRToRPE(rir float64) (float64, bool) {
	for _, e := range rirRPETable {
		if e.rir == rir {
			return e.rpe, true
		}
	}
	return 0, false
}

// RPEToRIR is the inverse of RIRToRPE.
func RPEToRIR(rpe float64) (float64, bool) {
	for _, e := range rirRPETable {
		if e.rpe == rpe {
			return e.rir, true
		}
	}
	return 0, false
}

// RIRValues lists the mapped RIR steps in ascending order.
func RIRValues() []float64 {
	out := make([]float64, 0, len(rirRPETable))
	for _, e := range rirRPETable {
		out = append(out, e.rir)
	}
	return out
}

package formula

type VolumeResult struct {
	Volume  float64 `json:"volume"`
	Tonnage float64 `json:"tonnage"`
}

// CalculateVolume returns sets x reps x load and the same value in metric tons.
func CalculateVolume(sets, reps int, load float64) VolumeResult {
	volume := float64(sets) * float64(reps) * load
	return VolumeResult{
		Volume:  volume,
		Tonnage: volume * 0.001,
	}
}

package simulation

// DailyEnergyKWh estimates a room's average daily consumption in kWh from
// its weekly schedule alone, independent of live readings. Scheduled time
// runs at nominal wattage, the remainder of the day at the fixed standby
// draw. Rooms with no scheduled slots are assumed active 8 hours a day so
// the estimate never collapses to standby-only.
func (s *Simulator) DailyEnergyKWh(roomID string) float64 {
	wattage := defaultWattage
	if cfg, ok := s.rooms[roomID]; ok {
		wattage = cfg.Wattage
	}

	var weeklyHours float64
	if entry, ok := s.schedules[roomID]; ok {
		for _, slot := range entry.Slots {
			weeklyHours += float64(slot.Duration()) / 60.0
		}
	}

	dailyHours := fallbackDailyHours
	if weeklyHours > 0 {
		dailyHours = weeklyHours / 7.0
	}
	standbyHours := 24 - dailyHours

	return round3((wattage*dailyHours + standbyWattage*standbyHours) / 1000.0)
}

// DailyCostBDT estimates a room's daily electricity cost at the flat tariff.
func (s *Simulator) DailyCostBDT(roomID string) float64 {
	return CostBDT(s.DailyEnergyKWh(roomID))
}

// CostBDT converts an energy figure to cost at the flat tariff.
func CostBDT(kwh float64) float64 {
	return round2(kwh * tariffBDTPerKWh)
}

// CO2SavedKg converts an energy figure to avoided emissions in kg.
func CO2SavedKg(kwh float64) float64 {
	return round2(kwh * co2KgPerKWh)
}

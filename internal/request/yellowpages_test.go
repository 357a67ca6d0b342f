package request

import "testing"

func TestToCompanySortsWorkingTimeIntervalsByMinutesTo(t *testing.T) {
	cw := companyWire{
		WorkingTime: &workingTimeWire{
			Intervals: []workingTimeIntervalWire{
				{Day: "TUESDAY", MinutesFrom: 540, MinutesTo: 1080},
				{Day: "MONDAY", MinutesFrom: 540, MinutesTo: 1080},
				{Day: "WEDNESDAY", MinutesFrom: 540, MinutesTo: 600},
			},
		},
	}
	c := cw.toCompany()
	if len(c.WorkingTime.Intervals) != 3 {
		t.Fatalf("len(Intervals) = %d, want 3", len(c.WorkingTime.Intervals))
	}
	for i := 1; i < len(c.WorkingTime.Intervals); i++ {
		if c.WorkingTime.Intervals[i-1].MinutesTo > c.WorkingTime.Intervals[i].MinutesTo {
			t.Errorf("Intervals not sorted by MinutesTo: %+v", c.WorkingTime.Intervals)
		}
	}
	// WEDNESDAY (minutes_to 600 + 2*1440 = 3480) is actually latest by
	// week offset once the day offset is added; MONDAY's 540..1080 comes
	// first, TUESDAY's 540..1080+1440 second, WEDNESDAY's third.
	if c.WorkingTime.Intervals[0].MinutesTo != 1080 {
		t.Errorf("Intervals[0].MinutesTo = %v, want 1080 (MONDAY)", c.WorkingTime.Intervals[0].MinutesTo)
	}
}

func TestToCompanyEverydayWorkingTimeDefault(t *testing.T) {
	cw := companyWire{}
	c := cw.toCompany()
	if !c.WorkingTime.IsEveryday {
		t.Error("expected IsEveryday to default true when working_time is absent")
	}
	if len(c.WorkingTime.Intervals) != 0 {
		t.Errorf("expected no intervals, got %v", c.WorkingTime.Intervals)
	}
}

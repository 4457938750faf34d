package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/mchallenge/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals_Example(t *testing.T) {
	days := model.NewDays()
	days[0].Done, days[0].Amount = true, dec("500")
	days[1].Done, days[1].Amount = true, dec("-200")

	got := ComputeTotals(&days, 30, dec("13000"))

	if !got.Total.Equal(dec("300")) {
		t.Errorf("Total = %s, want 300", got.Total)
	}
	if got.DaysDone != 2 {
		t.Errorf("DaysDone = %d, want 2", got.DaysDone)
	}
	if got.Wins != 1 || got.Losses != 1 {
		t.Errorf("Wins/Losses = %d/%d, want 1/1", got.Wins, got.Losses)
	}
	if math.Abs(got.GoalProgress-2.3077) > 0.001 {
		t.Errorf("GoalProgress = %.4f, want ~2.31", got.GoalProgress)
	}
	if !got.AvgPerDone.Equal(dec("150")) {
		t.Errorf("AvgPerDone = %s, want 150", got.AvgPerDone)
	}
	if !got.AvgPerDay.Equal(dec("10")) {
		t.Errorf("AvgPerDay = %s, want 10", got.AvgPerDay)
	}
}

func TestComputeTotals_IgnoresRecordsPastPrefix(t *testing.T) {
	for _, length := range model.Lengths {
		days := model.NewDays()
		days[0].Done, days[0].Amount = true, dec("100")
		base := ComputeTotals(&days, length, dec("1000"))

		for i := length; i < model.DayCount; i++ {
			days[i].Done, days[i].Amount = true, dec("-999")
		}
		after := ComputeTotals(&days, length, dec("1000"))

		if !after.Total.Equal(base.Total) || after.DaysDone != base.DaysDone ||
			after.Wins != base.Wins || after.Losses != base.Losses ||
			after.GoalProgress != base.GoalProgress {
			t.Errorf("length %d: totals changed by records past the prefix: %+v vs %+v", length, base, after)
		}
	}
}

func TestComputeTotals_UndoneAmountsCountTowardTotalOnly(t *testing.T) {
	days := model.NewDays()
	days[4].Amount = dec("75")

	got := ComputeTotals(&days, 30, dec("13000"))
	if !got.Total.Equal(dec("75")) {
		t.Errorf("Total = %s, want 75", got.Total)
	}
	if got.DaysDone != 0 || got.Wins != 0 {
		t.Errorf("DaysDone/Wins = %d/%d, want 0/0", got.DaysDone, got.Wins)
	}
	if !got.AvgPerDone.IsZero() {
		t.Errorf("AvgPerDone = %s, want 0 with no done days", got.AvgPerDone)
	}
}

func TestComputeTotals_DoneZeroIsNeitherWinNorLoss(t *testing.T) {
	days := model.NewDays()
	days[0].Done = true

	got := ComputeTotals(&days, 30, dec("13000"))
	if got.DaysDone != 1 || got.Wins != 0 || got.Losses != 0 {
		t.Errorf("got %d done, %d wins, %d losses; want 1, 0, 0", got.DaysDone, got.Wins, got.Losses)
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name        string
		total, goal string
		want        float64
	}{
		{"half", "500", "1000", 50},
		{"capped", "5000", "1000", 100},
		{"zero goal", "500", "0", 0},
		{"negative goal", "500", "-10", 0},
		{"negative total not floored", "-250", "1000", -25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GoalProgress(dec(tt.total), dec(tt.goal)); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("GoalProgress(%s, %s) = %v, want %v", tt.total, tt.goal, got, tt.want)
			}
		})
	}
}

package facts

import "testing"

func TestLifePathNumber(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year int
		want             string
	}{
		{name: "master day component", day: 29, month: 11, year: 1999, want: "5"},
		{name: "plain reduction", day: 1, month: 1, year: 2000, want: "4"},
		{name: "total reduces to master eleven", day: 9, month: 9, year: 2009, want: "11"},
		{name: "total of twenty two is preserved", day: 29, month: 9, year: 2000, want: "22"},
		{name: "large year", day: 1, month: 1, year: 9987, want: "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LifePathNumber(tt.day, tt.month, tt.year); got != tt.want {
				t.Errorf("LifePathNumber(%d, %d, %d) = %s, want %s", tt.day, tt.month, tt.year, got, tt.want)
			}
		})
	}
}

func TestLifePathNumber_RangeAndIdempotence(t *testing.T) {
	allowed := map[string]bool{
		"1": true, "2": true, "3": true, "4": true, "5": true, "6": true,
		"7": true, "8": true, "9": true, "11": true, "22": true, "33": true,
	}

	for year := 1900; year <= 2030; year += 7 {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 28; day++ {
				first := LifePathNumber(day, month, year)
				if !allowed[first] {
					t.Fatalf("LifePathNumber(%d, %d, %d) = %s, outside allowed set", day, month, year, first)
				}
				if again := LifePathNumber(day, month, year); again != first {
					t.Fatalf("LifePathNumber(%d, %d, %d) not stable: %s then %s", day, month, year, first, again)
				}
			}
		}
	}
}

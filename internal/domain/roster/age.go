package roster

import (
	"time"
)

// birthdateLayout is the feed's birthdate format.
const birthdateLayout = "2006-01-02"

// Age returns completed years between birthdate ("2006-01-02" form) and
// now. Unparseable or future birthdates return 0.
func Age(birthdate string, now time.Time) int {
	born, err := time.Parse(birthdateLayout, birthdate)
	if err != nil {
		return 0
	}
	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Bucket is an age band used for roster distribution charts.
type Bucket struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Age bands. Boundaries are inclusive of the lower edge: under 25 is
// young, 25 through 29 prime, 30 and up veteran.
var (
	BucketYoung   = Bucket{Name: "young", Color: "#4caf50"}
	BucketPrime   = Bucket{Name: "prime", Color: "#2196f3"}
	BucketVeteran = Bucket{Name: "veteran", Color: "#ff9800"}
)

// AgeBucket classifies an age into its chart band.
func AgeBucket(age int) Bucket {
	switch {
	case age < 25:
		return BucketYoung
	case age < 30:
		return BucketPrime
	default:
		return BucketVeteran
	}
}

// AgeDistribution counts players per age band.
func AgeDistribution(players []Player, now time.Time) map[string]int {
	dist := make(map[string]int, 3)
	for _, p := range players {
		dist[AgeBucket(Age(p.Birthdate, now)).Name]++
	}
	return dist
}

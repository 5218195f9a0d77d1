package popsim

// Survey design and geography columns carried through from the raw
// extract to the synthetic population.
var idNames = []string{"cluster", "strata", "serial", "county", "city", "puma", "metro"}

// One-hot covariate groups.  The first name in each group is the
// reference category and is omitted from regression models.
var (
	raceNames = []string{"white", "black", "asian", "hisp", "othrace"}
	ageNames  = []string{"age1824", "age2534", "age3544", "age4554", "age5564", "age65p"}
	educNames = []string{"edelem", "edsomehs", "edhs", "edsomecol", "edassoc", "edba", "edgrad"}
)

// Covariates returns the covariate names entering the exposure and
// outcome models: the male indicator plus the non-reference levels of
// each one-hot group.
func Covariates() []string {
	var v []string
	v = append(v, "male")
	v = append(v, raceNames[1:]...)
	v = append(v, ageNames[1:]...)
	v = append(v, educNames[1:]...)
	return v
}

// raceGroup collapses a detailed survey race code to one of the five
// race/ethnicity groups.  A non-missing Hispanic origin code overrides
// the race code.  Codes follow the IPUMS-style coding of the extract:
// race 100 is white, 200 is black, 650-652 are Asian/Pacific Islander,
// Hispanic origin 0 means not Hispanic and codes of 900 or above are
// missing/unknown.
func raceGroup(race, hispan float64) int {

	if hispan > 0 && hispan < 900 {
		return 3 // hisp
	}

	switch {
	case race == 100:
		return 0 // white
	case race == 200:
		return 1 // black
	case race >= 650 && race <= 652:
		return 2 // asian
	}
	return 4 // othrace
}

// ageGroup maps age in years to one of six bins: 18-24, 25-34, 35-44,
// 45-54, 55-64, 65+.  Ages below 18 do not occur in the adult extract.
func ageGroup(age float64) int {
	switch {
	case age < 25:
		return 0
	case age < 35:
		return 1
	case age < 45:
		return 2
	case age < 55:
		return 3
	case age < 65:
		return 4
	}
	return 5
}

// educGroup maps a detailed education code to one of seven ordered
// bins: grade school, some high school, high school diploma, some
// college, associate degree, bachelor degree, graduate degree.
func educGroup(educ float64) int {
	switch {
	case educ <= 32:
		return 0
	case educ <= 71:
		return 1
	case educ <= 73:
		return 2
	case educ <= 81:
		return 3
	case educ <= 92:
		return 4
	case educ <= 111:
		return 5
	}
	return 6
}

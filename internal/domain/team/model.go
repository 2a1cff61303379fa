package team

// Team is immutable reference data shared across seasons.
type Team struct {
	ID           string
	Name         string
	City         string
	Abbreviation string
	Conference   string
	Division     string
}

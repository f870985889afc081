package sim

// Status is the epidemic compartment of a node.
type Status string

const (
	StatusSusceptible Status = "S"
	StatusInfected    Status = "I"
	StatusRecovered   Status = "R"
	StatusVaccinated  Status = "V"
)

// legalTransitions lists the only status changes the model allows.
// Vaccinated and Recovered are absorbing.
var legalTransitions = map[Status]map[Status]bool{
	StatusSusceptible: {StatusVaccinated: true, StatusInfected: true},
	StatusInfected:    {StatusRecovered: true},
}

// CanTransition reports whether a node may move from one status to another.
func CanTransition(from, to Status) bool {
	return legalTransitions[from][to]
}

// String returns the single-letter compartment name.
func (s Status) String() string { return string(s) }

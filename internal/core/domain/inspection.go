package domain

// InspectionPolicy determines how a check's required artifacts combine.
type InspectionPolicy int

const (
	// PolicyAll requires every listed artifact to be present.
	PolicyAll InspectionPolicy = iota

	// PolicyAny requires at least one listed artifact to be present.
	PolicyAny
)

// String returns the policy name.
func (p InspectionPolicy) String() string {
	switch p {
	case PolicyAll:
		return "ALL"
	case PolicyAny:
		return "ANY"
	default:
		return "UNKNOWN"
	}
}

// InspectionCheck is a static registry entry: a named predicate over
// required artifact presence. Checks are never mutated at runtime.
type InspectionCheck struct {
	// Name identifies the check in inspection output.
	Name string

	// Requires lists the artifact logical names the check tests, in order.
	Requires []ArtifactName

	// Policy is how the required artifacts combine (ALL or ANY).
	Policy InspectionPolicy
}

// InspectionResult is the outcome of evaluating one check.
// Results are derived on every inspection call, never stored.
type InspectionResult struct {
	// Check is the name of the evaluated check.
	Check string

	// Available reports whether the check's policy was satisfied.
	Available bool
}

// DefaultChecks is the static inspection registry. Inspection evaluates
// checks in this order and emits results in the same order.
var DefaultChecks = []InspectionCheck{
	{
		Name:     "style+hierarchy",
		Requires: []ArtifactName{ArtifactStyle, ArtifactHier},
		Policy:   PolicyAll,
	},
	{
		Name:     "toc titles",
		Requires: []ArtifactName{ArtifactTOCTitles},
		Policy:   PolicyAll,
	},
	{
		Name:     "titles",
		Requires: []ArtifactName{ArtifactTitles},
		Policy:   PolicyAll,
	},
	{
		Name:     "any markdown",
		Requires: []ArtifactName{ArtifactStyle, ArtifactHier, ArtifactTOCTitles, ArtifactTitles},
		Policy:   PolicyAny,
	},
}

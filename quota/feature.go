package quota

// Feature is one kind of generated content. Closed set: the policy table and
// the generation routes are both keyed by it, so adding a feature means adding
// a constant here plus seed rows, not new branching code.
type Feature string

const (
	FeatureScript      Feature = "script"
	FeatureHooks       Feature = "hooks"
	FeatureTitles      Feature = "titles"
	FeatureOutline     Feature = "outline"
	FeatureDescription Feature = "description"
	FeatureTags        Feature = "tags"
	FeatureThumbnail   Feature = "thumbnail"
	FeatureCTAs        Feature = "ctas"
)

// AllFeatures in a stable order (used by seeding and the usage report).
var AllFeatures = []Feature{
	FeatureScript,
	FeatureHooks,
	FeatureTitles,
	FeatureOutline,
	FeatureDescription,
	FeatureTags,
	FeatureThumbnail,
	FeatureCTAs,
}

// ValidFeature reports whether f is one of the known content types.
func ValidFeature(f Feature) bool {
	for _, known := range AllFeatures {
		if f == known {
			return true
		}
	}
	return false
}

package textract

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

var featureNames = map[string]types.FeatureType{
	"TABLES":     types.FeatureTypeTables,
	"FORMS":      types.FeatureTypeForms,
	"QUERIES":    types.FeatureTypeQueries,
	"SIGNATURES": types.FeatureTypeSignatures,
	"LAYOUT":     types.FeatureTypeLayout,
}

// ParseFeatures converts CLI feature names into API feature types.
// Names are case-insensitive; duplicates are collapsed.
func ParseFeatures(names []string) ([]types.FeatureType, error) {
	var out []types.FeatureType
	seen := make(map[types.FeatureType]bool)

	for _, name := range names {
		ft, ok := featureNames[strings.ToUpper(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown feature type %q, want one of %s", name, strings.Join(FeatureNames(), ", "))
		}
		if seen[ft] {
			continue
		}
		seen[ft] = true
		out = append(out, ft)
	}
	return out, nil
}

// FeatureNames lists the accepted feature names in a stable order.
func FeatureNames() []string {
	return []string{"TABLES", "FORMS", "QUERIES", "SIGNATURES", "LAYOUT"}
}

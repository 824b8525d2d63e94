package education

import "github.com/BTreeMap/NeuroSoma/internal/models"

// EstimateProtocolType maps contraindication counts to a risk tier. More or
// more severe contraindications never select a less conservative tier.
func EstimateProtocolType(c models.Contraindications) models.ProtocolType {
	absolute := len(c.Absolute)
	relative := len(c.Relative)

	switch {
	case absolute > 2 || relative > 4:
		return models.ProtocolGentle
	case absolute > 0 || relative > 2:
		return models.ProtocolModerate
	default:
		return models.ProtocolStandard
	}
}

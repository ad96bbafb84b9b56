package patient

import (
	"context"
	"strings"

	"github.com/jwalitptl/healthapp-api/internal/model"
)

var diseaseTips = map[string][]string{
	"diabetes": {
		"Check your blood sugar daily.",
		"Avoid sugary drinks and processed foods.",
		"Walk at least 30 minutes a day.",
		"Always keep a small snack in case of low sugar.",
	},
	"hypertension": {
		"Reduce your salt intake.",
		"Monitor your blood pressure regularly.",
		"Practice relaxation or meditation daily.",
		"Limit alcohol and caffeine.",
	},
	"asthma": {
		"Always keep your inhaler with you.",
		"Avoid smoking and secondhand smoke.",
		"Track triggers like dust or cold weather.",
		"Warm up before exercising.",
	},
	"heart_disease": {
		"Take your medications on time.",
		"Follow a heart-healthy diet with less saturated fat.",
		"Avoid stressful situations when possible.",
		"Exercise moderately after doctor’s advice.",
	},
}

var defaultTips = []string{
	"Follow your doctor’s advice.",
	"Maintain a balanced diet and stay active.",
}

// diseaseKey maps "Heart Disease" and "heart-disease" onto the catalogue key heart_disease.
func diseaseKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(key)
}

// TipsFor returns the de-duplicated tips for the named conditions. A condition outside the catalogue,
// or no condition at all, contributes the default set.
func TipsFor(diseases []string) []string {
	if len(diseases) == 0 {
		return append([]string(nil), defaultTips...)
	}

	seen := make(map[string]bool)
	var tips []string
	for _, d := range diseases {
		set, ok := diseaseTips[diseaseKey(d)]
		if !ok {
			set = defaultTips
		}
		for _, tip := range set {
			if !seen[tip] {
				seen[tip] = true
				tips = append(tips, tip)
			}
		}
	}
	return tips
}

func (s *Service) Tips(ctx context.Context, actor model.Actor, patientID model.PatientID) ([]string, error) {
	diseases, err := s.ListChronicDiseases(ctx, actor, patientID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(diseases))
	for _, d := range diseases {
		names = append(names, d.DiseaseName)
	}
	return TipsFor(names), nil
}

package competitive

import (
	"reflect"
	"testing"
)

func featured(id string, features map[string][]string) ProductMetrics {
	return ProductMetrics{ProductID: id, Title: "Product " + id, Features: features}
}

func TestAnalyzeFeaturesClassification(t *testing.T) {
	main := featured("MAIN01", map[string][]string{
		"connectivity": {"bluetooth", "zigbee", "nfc"},
	})
	competitors := []ProductMetrics{
		featured("COMP01", map[string][]string{"connectivity": {"bluetooth", "wifi6", "nfc"}}),
		featured("COMP02", map[string][]string{"connectivity": {"bluetooth", "wifi6"}}),
		featured("COMP03", map[string][]string{"connectivity": {"bluetooth"}}),
	}

	dim := AnalyzeFeatures(&main, competitors)
	if !dim.OK() {
		t.Fatal("feature dimension must always be available")
	}
	analysis := dim.Data

	if !reflect.DeepEqual(analysis.UniqueToMain["connectivity"], []string{"zigbee"}) {
		t.Errorf("expected [zigbee] unique to main, got %v", analysis.UniqueToMain["connectivity"])
	}
	// Threshold with 3 competitors is ceil(2.1) = 3.
	if !reflect.DeepEqual(analysis.CommonFeatures["connectivity"], []string{"bluetooth"}) {
		t.Errorf("expected [bluetooth] common, got %v", analysis.CommonFeatures["connectivity"])
	}
	if !reflect.DeepEqual(analysis.MissingFromMain["connectivity"], []string{"wifi6"}) {
		t.Errorf("expected [wifi6] missing from main, got %v", analysis.MissingFromMain["connectivity"])
	}

	// nfc is in main and one competitor: under the threshold, not unique,
	// so it lands in no bucket.
	for bucket, features := range map[string][]string{
		"unique":  analysis.UniqueToMain["connectivity"],
		"common":  analysis.CommonFeatures["connectivity"],
		"missing": analysis.MissingFromMain["connectivity"],
	} {
		for _, f := range features {
			if f == "nfc" {
				t.Errorf("nfc must stay unclassified, found in %s", bucket)
			}
		}
	}
}

func TestAnalyzeFeaturesBucketsDisjoint(t *testing.T) {
	main := featured("MAIN01", map[string][]string{
		"audio": {"anc", "transparency"},
		"power": {"usb-c"},
	})
	competitors := []ProductMetrics{
		featured("COMP01", map[string][]string{"audio": {"anc", "spatial"}, "power": {"usb-c", "wireless"}}),
		featured("COMP02", map[string][]string{"audio": {"anc"}, "power": {"usb-c"}}),
	}

	dim := AnalyzeFeatures(&main, competitors)
	analysis := dim.Data

	for _, category := range analysis.Categories {
		seen := map[string]string{}
		for bucket, features := range map[string][]string{
			"unique":  analysis.UniqueToMain[category],
			"common":  analysis.CommonFeatures[category],
			"missing": analysis.MissingFromMain[category],
		} {
			for _, f := range features {
				if prev, dup := seen[f]; dup {
					t.Errorf("feature %q in both %s and %s for category %s", f, prev, bucket, category)
				}
				seen[f] = bucket
			}
		}
	}
}

func TestAnalyzeFeaturesCommonRegardlessOfMain(t *testing.T) {
	// A feature every competitor shares is common even when main lacks it.
	main := featured("MAIN01", map[string][]string{"display": {"oled"}})
	competitors := []ProductMetrics{
		featured("COMP01", map[string][]string{"display": {"hdr"}}),
		featured("COMP02", map[string][]string{"display": {"hdr"}}),
	}

	dim := AnalyzeFeatures(&main, competitors)
	analysis := dim.Data

	if !reflect.DeepEqual(analysis.CommonFeatures["display"], []string{"hdr"}) {
		t.Errorf("expected [hdr] common, got %v", analysis.CommonFeatures["display"])
	}
	if len(analysis.MissingFromMain["display"]) != 0 {
		t.Errorf("common features must not double as missing, got %v", analysis.MissingFromMain["display"])
	}
}

func TestAnalyzeFeaturesDiversity(t *testing.T) {
	main := featured("MAIN01", map[string][]string{
		"connectivity": {"bluetooth", "zigbee", "nfc"},
	})
	competitors := []ProductMetrics{
		featured("COMP01", map[string][]string{"connectivity": {"a", "b", "c"}}),
		featured("COMP02", map[string][]string{"connectivity": {"a", "b"}}),
		featured("COMP03", map[string][]string{"connectivity": {"a"}}),
	}

	dim := AnalyzeFeatures(&main, competitors)
	diversity := dim.Data.Diversity

	if diversity.MainFeatureCount != 3 {
		t.Errorf("expected 3 main features, got %d", diversity.MainFeatureCount)
	}
	if diversity.CompetitorAverage != 2.0 {
		t.Errorf("expected competitor average 2.0, got %v", diversity.CompetitorAverage)
	}
	if diversity.Richness != "above_average" {
		t.Errorf("expected above_average richness, got %s", diversity.Richness)
	}
	if diversity.CountComparison != 1.0 {
		t.Errorf("expected count comparison 1.0, got %v", diversity.CountComparison)
	}
}

func TestAnalyzeFeaturesEmpty(t *testing.T) {
	main := ProductMetrics{ProductID: "MAIN01"}
	competitors := []ProductMetrics{{ProductID: "COMP01"}}

	dim := AnalyzeFeatures(&main, competitors)
	if !dim.OK() {
		t.Fatal("feature dimension stays available even with no features anywhere")
	}
	if len(dim.Data.Categories) != 0 {
		t.Errorf("expected no categories, got %v", dim.Data.Categories)
	}
	if dim.Data.Diversity.Richness != "below_average" {
		t.Errorf("expected below_average richness for 0 vs 0, got %s", dim.Data.Diversity.Richness)
	}
}

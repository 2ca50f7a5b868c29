package selection

import "strings"

// topicCodes maps display names to the bank's internal topic identifiers.
// Selection accepts either form; unknown tags simply fail to resolve.
var topicCodes = map[string]string{
	// Quantitative aptitude
	"Percentage":            "percentage",
	"Profit & Loss":         "profit_loss",
	"Simple Interest":       "simple_interest",
	"Compound Interest":     "compound_interest",
	"Ratio & Proportion":    "ratio_proportion",
	"Mixtures & Alligation": "mixtures_alligation",
	"Partnership":           "partnership",
	"Average":               "average",
	"Time & Work":           "time_work",
	"Pipe & Cistern":        "pipe_cistern",
	"Time Speed Distance":   "time_speed_distance",
	"Boat & Stream":         "boat_stream",
	"Number System":         "number_system",
	"HCF & LCM":             "hcf_lcm",
	"Simplification":        "simplification",
	"Algebra":               "algebra",
	"Trigonometry":          "trigonometry",
	"Height & Distance":     "height_distance",
	"Geometry":              "geometry",
	"Mensuration 2D":        "mensuration_2d",
	"Mensuration 3D":        "mensuration_3d",
	"Coordinate Geometry":   "coordinate_geometry",
	"Data Interpretation":   "data_interpretation",
	"Statistics":            "statistics",

	// Reasoning
	"Coding Decoding":         "coding_decoding",
	"Analogy":                 "analogy",
	"Classification":          "classification",
	"Series":                  "series",
	"Missing Number":          "missing_number",
	"Blood Relation":          "blood_relation",
	"Distance & Direction":    "distance_direction",
	"Syllogism":               "syllogism",
	"Order & Ranking":         "order_ranking",
	"Sitting Arrangement":     "sitting_arrangement",
	"Clock & Calendar":        "clock_calendar",
	"Venn Diagram":            "venn_diagram",
	"Dice & Cube":             "dice_cube",
	"Figure Counting":         "figure_counting",
	"Mirror & Water Image":    "mirror_water_image",
	"Paper Cutting & Folding": "paper_cutting_folding",
	"Embedded Figure":         "embedded_figure",
	"Matrix":                  "matrix",
	"Mathematical Operation":  "mathematical_operation",
	"Word Formation":          "word_formation",
}

var codeSet = func() map[string]bool {
	set := make(map[string]bool, len(topicCodes))
	for _, code := range topicCodes {
		set[code] = true
	}
	return set
}()

// ResolveTopics maps topic tags to internal topic codes, dropping tags that
// resolve to nothing. Duplicate tags resolve once.
func ResolveTopics(tags []string) []string {
	seen := make(map[string]bool)
	var resolved []string
	for _, tag := range tags {
		code := ""
		if c, ok := topicCodes[tag]; ok {
			code = c
		} else if codeSet[strings.ToLower(tag)] {
			code = strings.ToLower(tag)
		}
		if code != "" && !seen[code] {
			seen[code] = true
			resolved = append(resolved, code)
		}
	}
	return resolved
}

// ContainsAll reports whether the tag set carries the wildcard that disables
// topic filtering.
func ContainsAll(tags []string) bool {
	for _, tag := range tags {
		if tag == "ALL" {
			return true
		}
	}
	return len(tags) == 0
}

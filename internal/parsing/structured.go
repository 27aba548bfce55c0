package parsing

import (
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/resume-structurer/internal/types"
)

// Field aliases, most specific first. The first alias with a non-empty value wins.
var (
	nameKeys       = []string{"name", "fullName"}
	emailKeys      = []string{"email"}
	phoneKeys      = []string{"phone", "phoneNumber"}
	locationKeys   = []string{"location", "address"}
	summaryKeys    = []string{"summary", "professionalSummary", "objective"}
	experienceKeys = []string{"experience", "workExperience"}
	educationKeys  = []string{"education"}
	skillsKeys     = []string{"skills"}

	titleKeys    = []string{"title", "position", "role"}
	companyKeys  = []string{"company", "employer", "organization"}
	durationKeys = []string{"duration", "dates", "period"}
	bulletKeys   = []string{"bullets", "achievements", "responsibilities", "highlights"}

	degreeKeys = []string{"degree"}
	schoolKeys = []string{"school", "institution", "university"}
	yearKeys   = []string{"year", "graduationYear", "endDate"}

	categoryKeys = []string{"category", "name"}
	itemKeys     = []string{"items", "skills"}
)

// ParseStructured maps input that is a serialized JSON object straight onto a
// ResumeDocument. It returns a *StructuredInputError when the input is not a
// non-null JSON object. Only the name placeholder is applied; no other
// defaulting runs on this path.
func ParseStructured(text string) (types.ResumeDocument, error) {
	obj, err := decodeObject(text)
	if err != nil {
		return types.ResumeDocument{}, err
	}

	doc := types.NewResumeDocument()
	doc.Name = stringField(obj, nameKeys)
	doc.Email = stringField(obj, emailKeys)
	doc.Phone = stringField(obj, phoneKeys)
	doc.Location = stringField(obj, locationKeys)
	doc.Summary = stringField(obj, summaryKeys)

	for _, item := range objectList(obj, experienceKeys) {
		doc.Experience = append(doc.Experience, mapExperience(item))
	}
	for _, item := range objectList(obj, educationKeys) {
		doc.Education = append(doc.Education, types.Education{
			Degree: stringField(item, degreeKeys),
			School: stringField(item, schoolKeys),
			Year:   stringField(item, yearKeys),
		})
	}
	doc.Skills = mapSkills(lookup(obj, skillsKeys))

	if doc.Name == "" {
		doc.Name = PlaceholderName
	}
	doc.EnsureNonNil()
	return doc, nil
}

// decodeObject decodes the whole input as a single JSON object.
func decodeObject(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, &StructuredInputError{Message: "input is not a JSON object"}
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, &StructuredInputError{Message: "failed to decode JSON", Cause: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &StructuredInputError{Message: "trailing data after JSON object"}
	}

	obj, ok := value.(map[string]any)
	if !ok || obj == nil {
		return nil, &StructuredInputError{Message: "JSON value is not an object"}
	}
	return obj, nil
}

func mapExperience(item map[string]any) types.Experience {
	exp := types.Experience{
		Title:    stringField(item, titleKeys),
		Company:  stringField(item, companyKeys),
		Duration: stringField(item, durationKeys),
		Bullets:  stringList(lookup(item, bulletKeys)),
	}
	if exp.Duration == "" {
		start := stringField(item, []string{"startDate"})
		end := stringField(item, []string{"endDate"})
		switch {
		case start != "" && end != "":
			exp.Duration = start + " - " + end
		case start != "":
			exp.Duration = start
		default:
			exp.Duration = end
		}
	}
	return exp
}

// mapSkills accepts a list of strings, a list of {category, items} objects,
// or an object of category to items.
func mapSkills(value any) []types.SkillGroup {
	groups := []types.SkillGroup{}

	switch v := value.(type) {
	case []any:
		var loose []string
		for _, entry := range v {
			switch e := entry.(type) {
			case map[string]any:
				groups = append(groups, types.SkillGroup{
					Category: stringField(e, categoryKeys),
					Items:    stringList(lookup(e, itemKeys)),
				})
			default:
				if s := scalarString(e); s != "" {
					loose = append(loose, s)
				}
			}
		}
		if len(loose) > 0 {
			groups = append(groups, types.SkillGroup{Category: ImplicitSkillCategory, Items: loose})
		}
	case map[string]any:
		categories := make([]string, 0, len(v))
		for category := range v {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			groups = append(groups, types.SkillGroup{Category: category, Items: stringList(v[category])})
		}
	case string:
		if items := splitItems(v); len(items) > 0 {
			groups = append(groups, types.SkillGroup{Category: ImplicitSkillCategory, Items: items})
		}
	}

	return groups
}

// lookup returns the value of the first alias present with a non-empty value.
func lookup(obj map[string]any, keys []string) any {
	for _, key := range keys {
		value, ok := obj[key]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return value
	}
	return nil
}

func stringField(obj map[string]any, keys []string) string {
	return scalarString(lookup(obj, keys))
}

// scalarString renders strings, numbers and booleans; anything else is empty.
func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// stringList turns a list of scalars, or a single scalar, into a string slice.
func stringList(value any) []string {
	result := []string{}
	switch v := value.(type) {
	case []any:
		for _, entry := range v {
			if s := scalarString(entry); s != "" {
				result = append(result, s)
			}
		}
	default:
		if s := scalarString(v); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// objectList returns the object elements of the first alias holding a list.
func objectList(obj map[string]any, keys []string) []map[string]any {
	list, ok := lookup(obj, keys).([]any)
	if !ok {
		return nil
	}
	objects := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if item, isObject := entry.(map[string]any); isObject && item != nil {
			objects = append(objects, item)
		}
	}
	return objects
}

// IsStructured reports whether text would take the structured short-circuit.
func IsStructured(text string) bool {
	_, err := decodeObject(text)
	return err == nil
}

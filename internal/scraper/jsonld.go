package scraper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rkaplan/x987scout/internal/models"
)

// extractJSONLD parses up to 5 application/ld+json script blocks found in
// doc, flattening dicts and arrays-of-dicts conservatively with a
// first-key-wins merge, mirroring the Python scraper's structured-data pass.
func extractJSONLD(doc *goquery.Document) map[string]any {
	merged := map[string]any{}
	scripts := doc.Find("script[type='application/ld+json']")

	count := 0
	scripts.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if count >= 5 {
			return false
		}
		count++

		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}

		var asMap map[string]any
		if err := json.Unmarshal([]byte(raw), &asMap); err == nil {
			mergeJSONLD(merged, asMap)
			return true
		}

		var asList []any
		if err := json.Unmarshal([]byte(raw), &asList); err == nil {
			for _, item := range asList {
				if obj, ok := item.(map[string]any); ok {
					mergeJSONLD(merged, obj)
				}
			}
		}
		return true
	})

	return merged
}

func mergeJSONLD(dst, src map[string]any) {
	for k, v := range src {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
}

// enrichSectionsFromJSONLD fills in any raw sections the selector-based pass
// missed, using title/offers/basic-spec fields from structured data.
func enrichSectionsFromJSONLD(sections map[string]string, sd map[string]any) {
	setIfEmpty := func(key, value string) {
		value = strings.TrimSpace(value)
		if value != "" && strings.TrimSpace(sections[key]) == "" {
			sections[key] = value
		}
	}

	name, _ := sd["name"].(string)
	composed := strings.TrimSpace(strings.Join([]string{
		asString(sd["vehicleModelDate"]),
		brandName(sd["brand"]),
		asString(sd["model"]),
		asString(sd["trim"]),
	}, " "))
	title := strings.TrimSpace(name)
	if title == "" {
		title = composed
	}
	setIfEmpty(models.SectionTitle, title)

	priceText := offerPrice(sd["offers"])
	if priceText != "" {
		setIfEmpty(models.SectionPrice, fmt.Sprintf("List price\n\n$%s", priceText))
	}

	var basicParts []string
	addBasic := func(label string, val any) {
		s := asString(val)
		if s != "" {
			basicParts = append(basicParts, fmt.Sprintf("%s\n%s", label, s))
		}
	}
	addBasic("Exterior color", sd["color"])
	addBasic("Mileage", odometerValue(sd["mileageFromOdometer"], sd["mileage"]))
	addBasic("Transmission", sd["vehicleTransmission"])
	addBasic("Drivetrain", sd["driveWheelConfiguration"])
	addBasic("Engine", engineName(sd["vehicleEngine"]))
	addBasic("Fuel type", sd["fuelType"])
	if len(basicParts) > 0 {
		setIfEmpty(models.SectionBasic, strings.Join(basicParts, "\n"))
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return trimFloat(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func brandName(v any) string {
	if obj, ok := v.(map[string]any); ok {
		return asString(obj["name"])
	}
	return asString(v)
}

func odometerValue(odometer, fallback any) any {
	if obj, ok := odometer.(map[string]any); ok {
		if val, ok := obj["value"]; ok {
			return val
		}
	}
	return fallback
}

func engineName(v any) any {
	if obj, ok := v.(map[string]any); ok {
		return obj["name"]
	}
	return nil
}

func offerPrice(offers any) string {
	switch t := offers.(type) {
	case map[string]any:
		return asString(t["price"])
	case []any:
		for _, o := range t {
			if obj, ok := o.(map[string]any); ok {
				if p := asString(obj["price"]); p != "" {
					return p
				}
			}
		}
	}
	return ""
}

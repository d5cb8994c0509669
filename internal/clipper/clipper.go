// Package clipper turns a travel article or blog post URL into itinerary
// items: the page is fetched, stripped of markup noise, and handed to the AI
// for structured extraction.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-trip-planner/internal/llm"
	"ai-trip-planner/internal/trip"

	"github.com/PuerkitoBio/goquery"
)

// Clipper handles fetching and extracting travel activities from URLs.
type Clipper struct {
	textGen llm.TextGenerator
}

// ExtractedActivity represents one activity structured by the AI.
type ExtractedActivity struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ExtractedPlan is the full result of clipping one page.
type ExtractedPlan struct {
	Title      string              `json:"title"`
	Activities []ExtractedActivity `json:"activities"`
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{textGen: textGen}
}

// ClipURL fetches the URL and extracts the activities it describes.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*ExtractedPlan, error) {
	content, err := c.fetchAndCleanHTML(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a travel itinerary extraction expert. Extract the places and activities described in the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Page or guide title",
  "activities": [
    {"time": "HH:MM or empty", "title": "Activity name", "location": "Place name", "type": "SIGHTSEEING|FOOD|TRANSPORT|SHOPPING|HOTEL|MISC", "description": "One sentence"}
  ]
}

Page Content:
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &trip.ExternalServiceError{Op: "clip url", Err: err}
	}

	var plan ExtractedPlan
	if err := json.Unmarshal([]byte(resp.Content), &plan); err != nil {
		return nil, &trip.ExternalServiceError{Op: "clip url", Err: fmt.Errorf("failed to parse AI response: %w", err)}
	}

	return &plan, nil
}

// ToItineraryItems converts the extracted activities into itinerary items
// with fresh ids, ready to be appended to a day plan.
func (p *ExtractedPlan) ToItineraryItems() []trip.ItineraryItem {
	items := make([]trip.ItineraryItem, 0, len(p.Activities))
	for _, a := range p.Activities {
		item := trip.ItineraryItem{
			ID:          trip.NewID(),
			Time:        a.Time,
			Title:       a.Title,
			Location:    a.Location,
			Description: a.Description,
		}
		if item.Time == "" {
			item.Time = "12:00"
		}
		item.Type = normalizeType(a.Type)
		item.NavQuery = a.Location
		if item.NavQuery == "" {
			item.NavQuery = a.Title
		}
		items = append(items, item)
	}
	return items
}

func normalizeType(s string) trip.ItemType {
	switch trip.ItemType(strings.ToUpper(strings.TrimSpace(s))) {
	case trip.TypeFood:
		return trip.TypeFood
	case trip.TypeTransport:
		return trip.TypeTransport
	case trip.TypeShopping:
		return trip.TypeShopping
	case trip.TypeHotel:
		return trip.TypeHotel
	case trip.TypeMisc:
		return trip.TypeMisc
	default:
		return trip.TypeSightseeing
	}
}

func (c *Clipper) fetchAndCleanHTML(url string) (string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

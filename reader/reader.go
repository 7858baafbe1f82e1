// Package reader holds the read-side helpers of the public site: the full
// post list is fetched once and narrowed locally.
package reader

import (
	"strings"
	"unicode/utf8"

	"inkpress/models"

	"golang.org/x/net/html"
)

// AllCategories selects every post.
const AllCategories = "All"

// Menu is the category filter shown to readers.
func Menu() []string {
	return []string{AllCategories, models.CategoryTechnology, models.CategoryLifestyle, models.CategoryStartup}
}

// FilterByCategory keeps posts whose category equals selection. "All" and an
// empty selection keep everything.
func FilterByCategory(posts []models.Post, selection string) []models.Post {
	if selection == "" || selection == AllCategories {
		return posts
	}
	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.Category == selection {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FindByID scans posts for the one whose identifier renders as id.
func FindByID(posts []models.Post, id string) (models.Post, bool) {
	for _, p := range posts {
		if p.ID.Hex() == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// Excerpt reduces description to its text content and truncates it to max
// characters. Entities are decoded so the template escapes them only once.
func Excerpt(description string, max int) string {
	text := strings.TrimSpace(textContent(description))
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return strings.TrimSpace(string([]rune(text)[:max])) + "…"
}

func textContent(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawText(string(name)) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawText(string(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawText(tag string) bool {
	return tag == "script" || tag == "style"
}
